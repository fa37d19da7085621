package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

type TemplateService struct {
	repo  ports.TemplateRepository
	audit ports.AuditRepository
	log   zerolog.Logger
}

func NewTemplateService(repo ports.TemplateRepository, audit ports.AuditRepository, log zerolog.Logger) *TemplateService {
	return &TemplateService{repo: repo, audit: audit, log: log}
}

func (s *TemplateService) Create(ctx context.Context, input ports.TemplateInput) (*domain.Template, error) {
	if !domain.ValidTemplateType(input.Type) {
		return nil, fmt.Errorf("%w: unknown template type %q", domain.ErrInvalidDocType, input.Type)
	}

	template := &domain.Template{
		Name:      input.Name,
		Type:      domain.TemplateType(input.Type),
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, template)
	if err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to create template")
		return nil, err
	}

	s.log.Info().Str("template_id", created.ID).Str("name", created.Name).Msg("template created")
	return created, nil
}

func (s *TemplateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.repo.List(ctx)
}

func (s *TemplateService) Update(ctx context.Context, id string, input ports.TemplateInput, actorID string) error {
	if !domain.ValidTemplateType(input.Type) {
		return fmt.Errorf("%w: unknown template type %q", domain.ErrInvalidDocType, input.Type)
	}

	if err := s.repo.Update(ctx, id, input.Name, domain.TemplateType(input.Type), input.Content); err != nil {
		return err
	}

	s.auditAction(ctx, id, fmt.Sprintf("Template edited: %s", input.Name), actorID)
	s.log.Info().Str("template_id", id).Str("name", input.Name).Msg("template updated")
	return nil
}

// Delete removes the template record only. Documents generated from it keep
// their files and stay downloadable.
func (s *TemplateService) Delete(ctx context.Context, id, actorID string) error {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditAction(ctx, id, fmt.Sprintf("Template deleted: %s", template.Name), actorID)
	s.log.Info().Str("template_id", id).Str("name", template.Name).Msg("template deleted")
	return nil
}

// auditAction writes a template audit entry; failures are logged, not
// returned, because the template change itself already happened.
func (s *TemplateService) auditAction(ctx context.Context, templateID, action, actorID string) {
	entry := &domain.AuditEntry{
		TemplateID: templateID,
		Action:     action,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("template_id", templateID).Msg("failed to append audit entry")
	}
}
