package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// CandidateInput carries all data needed to register a candidate. Dates are
// free-form strings, kept as entered.
type CandidateInput struct {
	Name      string
	Email     string
	Role      string
	StartDate string
	EndDate   string
}

// CandidateService defines use-case operations for candidate records.
type CandidateService interface {
	Add(ctx context.Context, input CandidateInput) (*domain.Candidate, error)
	// Search applies the caller's visibility rules: staff always see the
	// full list, other roles get a name/email substring match on query.
	Search(ctx context.Context, query, callerRole string) ([]*domain.Candidate, error)
	// Delete removes the candidate and writes a "Deleted Candidate" audit
	// entry before the record goes away.
	Delete(ctx context.Context, id, actorID string) error
	// Clear wipes every candidate record and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
