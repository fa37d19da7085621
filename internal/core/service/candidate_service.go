package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

type CandidateService struct {
	repo  ports.CandidateRepository
	audit ports.AuditRepository
	log   zerolog.Logger
}

func NewCandidateService(repo ports.CandidateRepository, audit ports.AuditRepository, log zerolog.Logger) *CandidateService {
	return &CandidateService{repo: repo, audit: audit, log: log}
}

func (s *CandidateService) Add(ctx context.Context, input ports.CandidateInput) (*domain.Candidate, error) {
	candidate := &domain.Candidate{
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Documents: []domain.DocumentRef{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, candidate)
	if err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to add candidate")
		return nil, err
	}

	s.log.Info().Str("candidate_id", created.ID).Str("name", created.Name).Msg("candidate added")
	return created, nil
}

// Search applies role-based visibility: staff always see the full list, the
// other roles get a case-insensitive name/email match on query.
func (s *CandidateService) Search(ctx context.Context, query, callerRole string) ([]*domain.Candidate, error) {
	if callerRole == domain.RoleStaff {
		query = ""
	}
	return s.repo.Search(ctx, query)
}

// Delete audits first, then removes the record. When the candidate does not
// exist nothing is written at all.
func (s *CandidateService) Delete(ctx context.Context, id, actorID string) error {
	candidate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	entry := &domain.AuditEntry{
		CandidateID: candidate.ID,
		Action:      "Deleted Candidate",
		ActorID:     actorID,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("audit candidate delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("candidate_id", id).Str("name", candidate.Name).Msg("candidate deleted")
	return nil
}

func (s *CandidateService) Clear(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("count", n).Msg("candidates cleared")
	return n, nil
}
