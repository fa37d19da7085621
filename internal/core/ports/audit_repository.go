package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// AuditRepository handles the append-only action log.
type AuditRepository interface {
	// Append persists one entry. Entries are never updated or deleted
	// individually.
	Append(ctx context.Context, entry *domain.AuditEntry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int64) ([]*domain.AuditEntry, error)
	Clear(ctx context.Context) (int64, error)
}
