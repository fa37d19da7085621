package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/api/metrics"
	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
	"github.com/letterforge/docgen-service/internal/render"
)

// DocumentService runs the generation pipeline: load candidate and
// template, merge, render through the right engine, store the file and
// record the reference plus an audit entry.
type DocumentService struct {
	candidates ports.CandidateRepository
	templates  ports.TemplateRepository
	audit      ports.AuditRepository
	pdf        ports.PDFEngine
	docx       ports.DocxEngine
	files      ports.FileStore
	assets     ports.AssetSource
	log        zerolog.Logger
}

func NewDocumentService(
	candidates ports.CandidateRepository,
	templates ports.TemplateRepository,
	audit ports.AuditRepository,
	pdf ports.PDFEngine,
	docx ports.DocxEngine,
	files ports.FileStore,
	assets ports.AssetSource,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		candidates: candidates,
		templates:  templates,
		audit:      audit,
		pdf:        pdf,
		docx:       docx,
		files:      files,
		assets:     assets,
		log:        log,
	}
}

// Generate renders one document and attaches it to the candidate.
func (s *DocumentService) Generate(ctx context.Context, in ports.GenerateInput) (*domain.DocumentRef, error) {
	started := time.Now()

	// 1. Validate the requested type before touching storage.
	format, err := domain.ParseDocType(in.DocType)
	if err != nil {
		metrics.GenerationErrorsTotal.WithLabelValues("invalid_doc_type").Inc()
		return nil, err
	}

	// 2. Load both sides of the merge.
	candidate, err := s.candidates.FindByID(ctx, in.CandidateID)
	if err != nil {
		metrics.GenerationErrorsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}
	template, err := s.templates.FindByID(ctx, in.TemplateID)
	if err != nil {
		metrics.GenerationErrorsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	// 3. Render.
	fields := render.Context(candidate)
	data, err := s.renderDocument(ctx, template, fields, format)
	if err != nil {
		metrics.GenerationErrorsTotal.WithLabelValues("render").Inc()
		s.log.Error().Err(err).
			Str("candidate_id", candidate.ID).
			Str("template_id", template.ID).
			Str("doc_type", in.DocType).
			Msg("document render failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	// 4. Store under the canonical timestamped name.
	filename := domain.DocumentFilename(in.DocType, candidate.ID, time.Now().UTC(), format)
	if err := s.files.WriteDocument(filename, data); err != nil {
		metrics.GenerationErrorsTotal.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	// 5. Attach the reference to the candidate record.
	ref := domain.DocumentRef{
		FileType:   in.DocType,
		FilePath:   filename,
		TemplateID: template.ID,
	}
	if err := s.candidates.AppendDocument(ctx, candidate.ID, ref); err != nil {
		metrics.GenerationErrorsTotal.WithLabelValues("store").Inc()
		return nil, err
	}

	// 6. Audit (non-fatal: the document already exists).
	s.auditGeneration(ctx, candidate.ID, template.ID, in)

	mode := "single"
	if in.Bulk {
		mode = "bulk"
	}
	metrics.DocumentsGeneratedTotal.WithLabelValues(in.DocType, mode).Inc()
	metrics.GenerationDuration.WithLabelValues(string(format)).Observe(time.Since(started).Seconds())

	s.log.Info().
		Str("candidate_id", candidate.ID).
		Str("template_id", template.ID).
		Str("file", filename).
		Msg("document generated")

	return &ref, nil
}

func (s *DocumentService) renderDocument(ctx context.Context, template *domain.Template, fields map[string]string, format domain.DocFormat) ([]byte, error) {
	merged := render.Merge(template.Content, fields)

	switch format {
	case domain.FormatPDF:
		page := render.Page(merged, s.assets.CSS(), s.assets.LogoBase64())
		return s.pdf.Render(ctx, page)
	case domain.FormatDOCX:
		return s.docx.Produce(ctx, template.Content, fields, merged)
	}
	return nil, domain.ErrInvalidDocType
}

func (s *DocumentService) auditGeneration(ctx context.Context, candidateID, templateID string, in ports.GenerateInput) {
	action := "Generated " + strings.ToUpper(in.DocType)
	if in.Bulk {
		action = "Bulk " + action
	}
	entry := &domain.AuditEntry{
		CandidateID: candidateID,
		TemplateID:  templateID,
		Action:      action,
		ActorID:     in.ActorID,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("candidate_id", candidateID).Msg("failed to append audit entry")
	}
}

// Preview assembles the HTML page without rendering or storing anything.
func (s *DocumentService) Preview(ctx context.Context, candidateID, templateID string) (string, error) {
	candidate, err := s.candidates.FindByID(ctx, candidateID)
	if err != nil {
		return "", err
	}
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return "", err
	}

	merged := render.Merge(template.Content, render.Context(candidate))
	return render.Page(merged, s.assets.CSS(), s.assets.LogoBase64()), nil
}

// ArchiveCandidate bundles one candidate's documents into a flat zip named
// "<name>_documents.zip".
func (s *DocumentService) ArchiveCandidate(ctx context.Context, candidateID string) (string, []byte, error) {
	candidate, err := s.candidates.FindByID(ctx, candidateID)
	if err != nil {
		return "", nil, err
	}

	entries := make([]ports.ArchiveEntry, 0, len(candidate.Documents))
	for _, doc := range candidate.Documents {
		entries = append(entries, ports.ArchiveEntry{Name: doc.FilePath, File: doc.FilePath})
	}

	var buf bytes.Buffer
	if err := s.files.Archive(&buf, entries); err != nil {
		return "", nil, fmt.Errorf("archive candidate %s: %w", candidateID, err)
	}

	return fmt.Sprintf("%s_documents.zip", candidate.Name), buf.Bytes(), nil
}

// ArchiveAll bundles every candidate's documents, one directory per
// candidate name.
func (s *DocumentService) ArchiveAll(ctx context.Context) ([]byte, error) {
	candidates, err := s.candidates.Search(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrCandidateNotFound
	}

	var entries []ports.ArchiveEntry
	for _, candidate := range candidates {
		for _, doc := range candidate.Documents {
			entries = append(entries, ports.ArchiveEntry{
				Name: path.Join(candidate.Name, doc.FilePath),
				File: doc.FilePath,
			})
		}
	}

	var buf bytes.Buffer
	if err := s.files.Archive(&buf, entries); err != nil {
		return nil, fmt.Errorf("archive all candidates: %w", err)
	}
	return buf.Bytes(), nil
}
