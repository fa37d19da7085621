package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/api/metrics"
	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

// NotifyService emails generated documents to candidates.
type NotifyService struct {
	candidates ports.CandidateRepository
	audit      ports.AuditRepository
	files      ports.FileStore
	mailer     ports.Mailer
	log        zerolog.Logger
}

func NewNotifyService(
	candidates ports.CandidateRepository,
	audit ports.AuditRepository,
	files ports.FileStore,
	mailer ports.Mailer,
	log zerolog.Logger,
) *NotifyService {
	return &NotifyService{
		candidates: candidates,
		audit:      audit,
		files:      files,
		mailer:     mailer,
		log:        log,
	}
}

// SendDocument mails the candidate's latest document of the requested type.
// The templateID narrows the match when given; the audit entry records the
// template of the document actually sent.
func (s *NotifyService) SendDocument(ctx context.Context, candidateID, templateID, docType, actorID string) (string, error) {
	if _, err := domain.ParseDocType(docType); err != nil {
		return "", err
	}

	candidate, err := s.candidates.FindByID(ctx, candidateID)
	if err != nil {
		return "", err
	}

	doc := s.matchDocument(candidate, docType, templateID)
	if doc == nil {
		return "", domain.ErrDocumentNotFound
	}

	data, err := s.files.ReadDocument(doc.FilePath)
	if err != nil {
		return "", fmt.Errorf("load document %s: %w", doc.FilePath, err)
	}

	label := strings.ToUpper(docType)
	msg := ports.MailMessage{
		To:             candidate.Email,
		Subject:        fmt.Sprintf("Your %s", label),
		HTMLBody:       fmt.Sprintf("Dear %s, please find attached your %s.", candidate.Name, docType),
		AttachmentName: doc.FilePath,
		Attachment:     data,
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).
			Str("candidate_id", candidateID).
			Str("to", candidate.Email).
			Msg("document email failed")
		return "", fmt.Errorf("%w: %v", domain.ErrEmailFailed, err)
	}

	metrics.EmailsSentTotal.WithLabelValues("sent").Inc()

	entry := &domain.AuditEntry{
		CandidateID: candidate.ID,
		TemplateID:  doc.TemplateID,
		Action:      fmt.Sprintf("Sent %s via email", label),
		ActorID:     actorID,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("candidate_id", candidateID).Msg("failed to append audit entry")
	}

	s.log.Info().
		Str("candidate_id", candidateID).
		Str("to", candidate.Email).
		Str("file", doc.FilePath).
		Msg("document emailed")

	return candidate.Email, nil
}

// matchDocument picks the newest document of docType, preferring one
// generated from templateID when that narrows to a match.
func (s *NotifyService) matchDocument(candidate *domain.Candidate, docType, templateID string) *domain.DocumentRef {
	if templateID != "" {
		for i := len(candidate.Documents) - 1; i >= 0; i-- {
			doc := &candidate.Documents[i]
			if doc.FileType == docType && doc.TemplateID == templateID {
				return doc
			}
		}
	}
	return candidate.FindDocument(docType)
}
