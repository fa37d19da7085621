package ports

import (
	"context"
	"time"
)

// AuditView is one audit entry enriched with display names for the dashboard.
// Names resolve to "N/A" when the referenced record is gone or was never set.
type AuditView struct {
	ID            string
	CandidateID   string
	CandidateName string
	TemplateID    string
	TemplateName  string
	Action        string
	ActorID       string
	Timestamp     time.Time
}

// AuditService exposes the action log to the dashboard and the admin reset.
type AuditService interface {
	Recent(ctx context.Context, limit int64) ([]AuditView, error)
	Clear(ctx context.Context) (int64, error)
}
