package ports

import (
	"context"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// GenerateInput carries the parameters of one document generation.
type GenerateInput struct {
	CandidateID string
	TemplateID  string
	// DocType is the composite type requested, e.g. "offer_pdf". Only the
	// _pdf / _docx suffix is validated.
	DocType string
	ActorID string
	// Bulk marks generations triggered by a spreadsheet import; they are
	// audited as "Bulk Generated ..." instead of "Generated ...".
	Bulk bool
}

// DocumentService renders templates into files and packages them for
// download.
type DocumentService interface {
	// Generate renders the template for the candidate, stores the file and
	// appends the resulting reference to the candidate's document list.
	Generate(ctx context.Context, input GenerateInput) (*domain.DocumentRef, error)
	// Preview returns the fully assembled HTML page for a candidate and
	// template without writing anything.
	Preview(ctx context.Context, candidateID, templateID string) (string, error)
	// ArchiveCandidate bundles every document of one candidate into a zip.
	// It returns the archive filename and the zip bytes.
	ArchiveCandidate(ctx context.Context, candidateID string) (string, []byte, error)
	// ArchiveAll bundles every candidate's documents into one zip, one
	// directory per candidate. Files missing on disk are skipped.
	ArchiveAll(ctx context.Context) ([]byte, error)
}

// NotifyService delivers generated documents to candidates by email.
type NotifyService interface {
	// SendDocument emails the candidate's latest document of the given type
	// as an attachment and returns the recipient address.
	SendDocument(ctx context.Context, candidateID, templateID, docType, actorID string) (string, error)
}
