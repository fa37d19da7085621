package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// TemplateRepository defines persistence operations for letter templates.
type TemplateRepository interface {
	Insert(ctx context.Context, t *domain.Template) (*domain.Template, error)
	FindByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Update(ctx context.Context, id string, name string, ttype domain.TemplateType, content string) error
	Delete(ctx context.Context, id string) error
}
