package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	// DeleteAll wipes the collection. Used by the admin CLI reset command.
	DeleteAll(ctx context.Context) (int64, error)
}
