package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// TemplateInput carries the editable fields of a letter template.
type TemplateInput struct {
	Name    string
	Type    string
	Content string
}

// TemplateService defines use-case operations for letter templates.
type TemplateService interface {
	Create(ctx context.Context, input TemplateInput) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	// Update edits a template in place and audits "Template edited: <name>".
	Update(ctx context.Context, id string, input TemplateInput, actorID string) error
	// Delete removes a template and audits "Template deleted: <name>".
	// Documents already generated from it keep working.
	Delete(ctx context.Context, id, actorID string) error
}
