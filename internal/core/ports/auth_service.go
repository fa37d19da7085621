package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// AuthService covers login, user administration and the bootstrap admin.
type AuthService interface {
	// Login verifies credentials and the declared role, returning a signed
	// JWT and the authenticated user.
	Login(ctx context.Context, username, password, role string) (string, *domain.User, error)
	CreateUser(ctx context.Context, username, password, role string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// DeleteUser removes a user account. The bootstrap root admin is
	// protected and cannot be deleted.
	DeleteUser(ctx context.Context, id string) error
	// EnsureAdmin creates the default root admin account if no such user
	// exists yet. Called on startup and by the admin CLI.
	EnsureAdmin(ctx context.Context) error
}
