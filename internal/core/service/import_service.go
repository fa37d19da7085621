package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/api/metrics"
	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
	"github.com/letterforge/docgen-service/internal/tabular"
)

// ImportService ingests candidate spreadsheets and fans out generation of
// every template in both formats for each row.
type ImportService struct {
	candidates ports.CandidateRepository
	templates  ports.TemplateRepository
	documents  ports.DocumentService
	files      ports.FileStore
	log        zerolog.Logger
}

func NewImportService(
	candidates ports.CandidateRepository,
	templates ports.TemplateRepository,
	documents ports.DocumentService,
	files ports.FileStore,
	log zerolog.Logger,
) *ImportService {
	return &ImportService{
		candidates: candidates,
		templates:  templates,
		documents:  documents,
		files:      files,
		log:        log,
	}
}

// Import processes rows strictly in order and aborts on the first failure.
// There is no rollback: rows finished before the failure keep their
// candidates and documents.
func (s *ImportService) Import(ctx context.Context, filename string, r io.Reader, actorID string) (*ports.ImportSummary, error) {
	// The raw upload is kept in the upload directory before any row is
	// processed.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if _, err := s.files.SaveUpload(filename, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	rows, err := tabular.Parse(filename, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}

	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ports.ImportSummary{}
	for i, row := range rows {
		candidate := &domain.Candidate{
			Name:      row.Get("name"),
			Email:     row.Get("email"),
			Role:      row.Get("role"),
			StartDate: row.Get("start_date"),
			EndDate:   row.Get("end_date"),
			Documents: []domain.DocumentRef{},
			CreatedAt: time.Now().UTC(),
		}

		created, err := s.candidates.Insert(ctx, candidate)
		if err != nil {
			return summary, fmt.Errorf("row %d: insert candidate: %w", i+1, err)
		}

		for _, template := range templates {
			for _, format := range []domain.DocFormat{domain.FormatPDF, domain.FormatDOCX} {
				input := ports.GenerateInput{
					CandidateID: created.ID,
					TemplateID:  template.ID,
					DocType:     domain.DocTypeFor(string(template.Type), format),
					ActorID:     actorID,
					Bulk:        true,
				}
				if _, err := s.documents.Generate(ctx, input); err != nil {
					return summary, fmt.Errorf("row %d: generate %s: %w", i+1, input.DocType, err)
				}
				summary.Documents++
			}
		}

		summary.Candidates++
		metrics.ImportRowsTotal.Inc()
	}

	s.log.Info().
		Str("file", filename).
		Int("candidates", summary.Candidates).
		Int("documents", summary.Documents).
		Msg("bulk import finished")

	return summary, nil
}
