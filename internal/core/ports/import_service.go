package ports

import (
	"context"
	"io"
)

// ImportSummary reports what a bulk upload produced.
type ImportSummary struct {
	Candidates int
	Documents  int
}

// ImportService ingests candidate spreadsheets and fans out document
// generation for every imported row.
type ImportService interface {
	// Import parses the upload (CSV or XLSX, chosen by filename extension),
	// inserts one candidate per row and generates a PDF and a DOCX for each
	// stored template. The first failing row aborts the batch; rows already
	// imported stay.
	Import(ctx context.Context, filename string, r io.Reader, actorID string) (*ImportSummary, error)
}
