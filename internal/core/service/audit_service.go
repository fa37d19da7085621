package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

// AuditService reads the action log back for the dashboard, resolving the
// referenced candidate and template names for display.
type AuditService struct {
	audit      ports.AuditRepository
	candidates ports.CandidateRepository
	templates  ports.TemplateRepository
	log        zerolog.Logger
}

func NewAuditService(
	audit ports.AuditRepository,
	candidates ports.CandidateRepository,
	templates ports.TemplateRepository,
	log zerolog.Logger,
) *AuditService {
	return &AuditService{
		audit:      audit,
		candidates: candidates,
		templates:  templates,
		log:        log,
	}
}

const nameUnavailable = "N/A"

// Recent returns the newest entries with display names attached. Deleted or
// never-set references resolve to "N/A" rather than dropping the entry; the
// log keeps its full history.
func (s *AuditService) Recent(ctx context.Context, limit int64) ([]ports.AuditView, error) {
	entries, err := s.audit.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]ports.AuditView, 0, len(entries))
	for _, entry := range entries {
		view := ports.AuditView{
			ID:            entry.ID,
			CandidateID:   entry.CandidateID,
			CandidateName: nameUnavailable,
			TemplateID:    entry.TemplateID,
			TemplateName:  nameUnavailable,
			Action:        entry.Action,
			ActorID:       entry.ActorID,
			Timestamp:     entry.Timestamp,
		}

		if entry.CandidateID != "" {
			candidate, err := s.candidates.FindByID(ctx, entry.CandidateID)
			switch {
			case err == nil:
				view.CandidateName = candidate.Name
			case !errors.Is(err, domain.ErrCandidateNotFound):
				return nil, err
			}
		}
		if entry.TemplateID != "" {
			template, err := s.templates.FindByID(ctx, entry.TemplateID)
			switch {
			case err == nil:
				view.TemplateName = template.Name
			case !errors.Is(err, domain.ErrTemplateNotFound):
				return nil, err
			}
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *AuditService) Clear(ctx context.Context) (int64, error) {
	n, err := s.audit.Clear(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("count", n).Msg("audit log cleared")
	return n, nil
}
