package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocFormat is the physical rendering of a generated letter.
type DocFormat string

const (
	FormatPDF  DocFormat = "pdf"
	FormatDOCX DocFormat = "docx"
)

// Ext returns the file extension for the format, dot included.
func (f DocFormat) Ext() string {
	return "." + string(f)
}

// ParseDocType extracts the output format from a composite document type
// such as "offer_pdf" or "appointment_docx". The prefix is free-form; only
// the format suffix is validated.
func ParseDocType(docType string) (DocFormat, error) {
	switch {
	case strings.HasSuffix(docType, "_pdf"):
		return FormatPDF, nil
	case strings.HasSuffix(docType, "_docx"):
		return FormatDOCX, nil
	}
	return "", ErrInvalidDocType
}

// DocTypeFor composes the document type stored on a generated file from a
// template type and an output format, e.g. ("offer", FormatPDF) -> "offer_pdf".
func DocTypeFor(templateType string, f DocFormat) string {
	return templateType + "_" + string(f)
}

// DocumentFilename builds the canonical on-disk name for a generated file:
// "<doc_type>_<candidate_id>_<YYYYMMDDHHMMSS>.<ext>".
func DocumentFilename(docType, candidateID string, ts time.Time, f DocFormat) string {
	return fmt.Sprintf("%s_%s_%s%s", docType, candidateID, ts.Format("20060102150405"), f.Ext())
}

// DocumentRef points at one generated file attached to a candidate.
type DocumentRef struct {
	FileType   string `json:"file_type" bson:"file_type"`
	FilePath   string `json:"file_path" bson:"file_path"`
	TemplateID string `json:"template_id" bson:"template_id"`
}

// Candidate is the core aggregate: one person being hired, plus the list of
// documents generated for them. Start and end dates are stored exactly as
// entered and normalized only at render time.
type Candidate struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Documents []DocumentRef `json:"documents"`
	CreatedAt time.Time     `json:"created_at"`
}

// FindDocument returns the most recently generated document of the given
// type, or nil when the candidate has none.
func (c *Candidate) FindDocument(docType string) *DocumentRef {
	for i := len(c.Documents) - 1; i >= 0; i-- {
		if c.Documents[i].FileType == docType {
			return &c.Documents[i]
		}
	}
	return nil
}
