package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// CandidateRepository defines persistence operations for candidates.
type CandidateRepository interface {
	Insert(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error)
	FindByID(ctx context.Context, id string) (*domain.Candidate, error)
	// Search returns candidates whose name or email contains query,
	// case-insensitively. An empty query returns every candidate.
	Search(ctx context.Context, query string) ([]*domain.Candidate, error)
	// AppendDocument atomically appends a generated document reference to the
	// candidate's document list.
	AppendDocument(ctx context.Context, id string, doc domain.DocumentRef) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
