package domain

import "time"

// AuditEntry is one line of the append-only action log. CandidateID and
// TemplateID are optional; actions that touch neither leave them empty.
type AuditEntry struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id,omitempty"`
	TemplateID  string    `json:"template_id,omitempty"`
	Action      string    `json:"action"`
	ActorID     string    `json:"actor_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
