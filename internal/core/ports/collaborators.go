package ports

import (
	"context"
	"io"
)

// PDFEngine renders an assembled HTML page into PDF bytes.
type PDFEngine interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// DocxEngine produces a DOCX document. When skeleton names a usable .docx
// file its placeholder fields are filled from fields; otherwise the engine
// falls back to a plain one-paragraph document containing fallbackText.
type DocxEngine interface {
	Produce(ctx context.Context, skeleton string, fields map[string]string, fallbackText string) ([]byte, error)
}

// ArchiveEntry names one file to include in a zip archive. Name is the path
// inside the archive, File the stored document name.
type ArchiveEntry struct {
	Name string
	File string
}

// FileStore abstracts the generated-document directory.
type FileStore interface {
	WriteDocument(name string, data []byte) error
	ReadDocument(name string) ([]byte, error)
	DocumentExists(name string) bool
	// DocumentPath resolves a stored name to an absolute path, rejecting
	// names that escape the document directory.
	DocumentPath(name string) (string, error)
	// SaveUpload stores an incoming bulk-import file and returns its path.
	SaveUpload(name string, r io.Reader) (string, error)
	// Archive writes the named documents into w as a zip. Entries whose file
	// is missing on disk are skipped.
	Archive(w io.Writer, entries []ArchiveEntry) error
}

// AssetSource supplies the shared letterhead assets inlined into every
// rendered page. Missing assets yield empty strings, never errors.
type AssetSource interface {
	CSS() string
	LogoBase64() string
}

// MailMessage is one transactional email with an optional attachment.
type MailMessage struct {
	To             string
	Subject        string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
