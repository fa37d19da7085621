package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

type stubDocumentService struct {
	generateFn         func(ctx context.Context, input ports.GenerateInput) (*domain.DocumentRef, error)
	previewFn          func(ctx context.Context, candidateID, templateID string) (string, error)
	archiveCandidateFn func(ctx context.Context, candidateID string) (string, []byte, error)
	archiveAllFn       func(ctx context.Context) ([]byte, error)
}

func (s *stubDocumentService) Generate(ctx context.Context, input ports.GenerateInput) (*domain.DocumentRef, error) {
	return s.generateFn(ctx, input)
}

func (s *stubDocumentService) Preview(ctx context.Context, candidateID, templateID string) (string, error) {
	return s.previewFn(ctx, candidateID, templateID)
}

func (s *stubDocumentService) ArchiveCandidate(ctx context.Context, candidateID string) (string, []byte, error) {
	return s.archiveCandidateFn(ctx, candidateID)
}

func (s *stubDocumentService) ArchiveAll(ctx context.Context) ([]byte, error) {
	return s.archiveAllFn(ctx)
}

type stubNotifyService struct {
	sendFn func(ctx context.Context, candidateID, templateID, docType, actorID string) (string, error)
}

func (s *stubNotifyService) SendDocument(ctx context.Context, candidateID, templateID, docType, actorID string) (string, error) {
	return s.sendFn(ctx, candidateID, templateID, docType, actorID)
}

type stubPathStore struct {
	pathFn   func(name string) (string, error)
	existsFn func(name string) bool
}

func (s *stubPathStore) WriteDocument(name string, data []byte) error { return nil }
func (s *stubPathStore) ReadDocument(name string) ([]byte, error)     { return nil, nil }
func (s *stubPathStore) DocumentExists(name string) bool {
	if s.existsFn == nil {
		return true
	}
	return s.existsFn(name)
}
func (s *stubPathStore) DocumentPath(name string) (string, error)         { return s.pathFn(name) }
func (s *stubPathStore) SaveUpload(name string, r io.Reader) (string, error) { return "", nil }
func (s *stubPathStore) Archive(w io.Writer, entries []ports.ArchiveEntry) error {
	return nil
}

func newDocumentHandler(docs ports.DocumentService, notify ports.NotifyService, files ports.FileStore) *DocumentHandler {
	if docs == nil {
		docs = &stubDocumentService{}
	}
	if notify == nil {
		notify = &stubNotifyService{}
	}
	if files == nil {
		files = &stubPathStore{}
	}
	return NewDocumentHandler(docs, notify, files)
}

func TestDocumentHandler_Generate_Success(t *testing.T) {
	var got ports.GenerateInput
	docs := &stubDocumentService{
		generateFn: func(ctx context.Context, input ports.GenerateInput) (*domain.DocumentRef, error) {
			got = input
			return &domain.DocumentRef{
				FileType:   input.DocType,
				FilePath:   "offer_pdf_c1_20250301120000.pdf",
				TemplateID: input.TemplateID,
			}, nil
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, rec := newTestContext(t, http.MethodPost, "/generate_document/c1/t1/offer_pdf", "")
	c.SetParamNames("candidate_id", "template_id", "doc_type")
	c.SetParamValues("c1", "t1", "offer_pdf")
	authenticate(c, "u7", "hr")

	if err := handler.Generate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.CandidateID != "c1" || got.TemplateID != "t1" || got.DocType != "offer_pdf" || got.ActorID != "u7" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Bulk {
		t.Fatalf("interactive generation must not be marked bulk")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "OFFER_PDF generated successfully!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	document, ok := resp["document"].(map[string]any)
	if !ok || document["file_path"] != "offer_pdf_c1_20250301120000.pdf" {
		t.Fatalf("unexpected document payload: %+v", resp["document"])
	}
}

func TestDocumentHandler_Generate_NotFound(t *testing.T) {
	docs := &stubDocumentService{
		generateFn: func(ctx context.Context, input ports.GenerateInput) (*domain.DocumentRef, error) {
			return nil, domain.ErrCandidateNotFound
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, _ := newTestContext(t, http.MethodPost, "/generate_document/missing/t1/offer_pdf", "")
	c.SetParamNames("candidate_id", "template_id", "doc_type")
	c.SetParamValues("missing", "t1", "offer_pdf")
	authenticate(c, "u1", "hr")

	err := handler.Generate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if he.Message != "Candidate or Template not found" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestDocumentHandler_Generate_InvalidDocType(t *testing.T) {
	docs := &stubDocumentService{
		generateFn: func(ctx context.Context, input ports.GenerateInput) (*domain.DocumentRef, error) {
			return nil, domain.ErrInvalidDocType
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, _ := newTestContext(t, http.MethodPost, "/generate_document/c1/t1/offer_txt", "")
	c.SetParamNames("candidate_id", "template_id", "doc_type")
	c.SetParamValues("c1", "t1", "offer_txt")
	authenticate(c, "u1", "hr")

	err := handler.Generate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if he.Message != "Invalid document type" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestDocumentHandler_Download_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offer_pdf_c1_20250301120000.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7 stub"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	files := &stubPathStore{
		pathFn: func(name string) (string, error) {
			if name != "offer_pdf_c1_20250301120000.pdf" {
				t.Fatalf("unexpected name %q", name)
			}
			return path, nil
		},
	}
	handler := newDocumentHandler(nil, nil, files)

	c, rec := newTestContext(t, http.MethodGet, "/download/offer_pdf_c1_20250301120000.pdf", "")
	c.SetParamNames("filename")
	c.SetParamValues("offer_pdf_c1_20250301120000.pdf")
	authenticate(c, "u1", "staff")

	if err := handler.Download(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "offer_pdf_c1_20250301120000.pdf") {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
	if rec.Body.String() != "%PDF-1.7 stub" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestDocumentHandler_Download_Missing(t *testing.T) {
	files := &stubPathStore{
		existsFn: func(name string) bool { return false },
		pathFn: func(name string) (string, error) {
			t.Fatal("path must not be resolved for a missing file")
			return "", nil
		},
	}
	handler := newDocumentHandler(nil, nil, files)

	c, _ := newTestContext(t, http.MethodGet, "/download/ghost.pdf", "")
	c.SetParamNames("filename")
	c.SetParamValues("ghost.pdf")
	authenticate(c, "u1", "staff")

	err := handler.Download(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if he.Message != "File not found" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestDocumentHandler_Preview_ReturnsHTML(t *testing.T) {
	docs := &stubDocumentService{
		previewFn: func(ctx context.Context, candidateID, templateID string) (string, error) {
			return "<html><body>Dear Jane Doe,</body></html>", nil
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, rec := newTestContext(t, http.MethodGet, "/preview/c1/t1", "")
	c.SetParamNames("candidate_id", "template_id")
	c.SetParamValues("c1", "t1")
	authenticate(c, "u1", "staff")

	if err := handler.Preview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextHTML) {
		t.Fatalf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "Dear Jane Doe,") {
		t.Fatalf("body missing letter text: %q", rec.Body.String())
	}
}

func TestDocumentHandler_Preview_NotFound(t *testing.T) {
	docs := &stubDocumentService{
		previewFn: func(ctx context.Context, candidateID, templateID string) (string, error) {
			return "", domain.ErrTemplateNotFound
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, _ := newTestContext(t, http.MethodGet, "/preview/c1/missing", "")
	c.SetParamNames("candidate_id", "template_id")
	c.SetParamValues("c1", "missing")
	authenticate(c, "u1", "staff")

	err := handler.Preview(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if he.Message != "Candidate or Template not found" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestDocumentHandler_SendEmail_Success(t *testing.T) {
	notify := &stubNotifyService{
		sendFn: func(ctx context.Context, candidateID, templateID, docType, actorID string) (string, error) {
			if candidateID != "c1" || templateID != "t1" || docType != "offer_pdf" || actorID != "u3" {
				t.Fatalf("unexpected args: %s %s %s %s", candidateID, templateID, docType, actorID)
			}
			return "jane@example.com", nil
		},
	}
	handler := newDocumentHandler(nil, notify, nil)

	c, rec := newTestContext(t, http.MethodPost, "/send_email/c1/t1/offer_pdf", "")
	c.SetParamNames("candidate_id", "template_id", "doc_type")
	c.SetParamValues("c1", "t1", "offer_pdf")
	authenticate(c, "u3", "hr")

	if err := handler.SendEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "OFFER_PDF sent successfully to jane@example.com" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["recipient"] != "jane@example.com" {
		t.Fatalf("unexpected recipient: %v", resp["recipient"])
	}
}

func TestDocumentHandler_SendEmail_NoDocument(t *testing.T) {
	notify := &stubNotifyService{
		sendFn: func(ctx context.Context, candidateID, templateID, docType, actorID string) (string, error) {
			return "", domain.ErrDocumentNotFound
		},
	}
	handler := newDocumentHandler(nil, notify, nil)

	c, _ := newTestContext(t, http.MethodPost, "/send_email/c1/t1/experience_docx", "")
	c.SetParamNames("candidate_id", "template_id", "doc_type")
	c.SetParamValues("c1", "t1", "experience_docx")
	authenticate(c, "u1", "hr")

	err := handler.SendEmail(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if he.Message != "No EXPERIENCE_DOCX document found." {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestDocumentHandler_SendEmail_MailerFailure(t *testing.T) {
	notify := &stubNotifyService{
		sendFn: func(ctx context.Context, candidateID, templateID, docType, actorID string) (string, error) {
			return "", domain.ErrEmailFailed
		},
	}
	handler := newDocumentHandler(nil, notify, nil)

	c, _ := newTestContext(t, http.MethodPost, "/send_email/c1/t1/offer_pdf", "")
	c.SetParamNames("candidate_id", "template_id", "doc_type")
	c.SetParamValues("c1", "t1", "offer_pdf")
	authenticate(c, "u1", "hr")

	if err := handler.SendEmail(c); !errors.Is(err, domain.ErrEmailFailed) {
		t.Fatalf("expected ErrEmailFailed, got %v", err)
	}
}

func TestDocumentHandler_DownloadAll_SetsDisposition(t *testing.T) {
	docs := &stubDocumentService{
		archiveCandidateFn: func(ctx context.Context, candidateID string) (string, []byte, error) {
			if candidateID != "c1" {
				t.Fatalf("unexpected candidate %q", candidateID)
			}
			return "Jane Doe_documents.zip", []byte("PK-zip"), nil
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, rec := newTestContext(t, http.MethodGet, "/download_all/c1", "")
	c.SetParamNames("candidate_id")
	c.SetParamValues("c1")
	authenticate(c, "u1", "staff")

	if err := handler.DownloadAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/zip" {
		t.Fatalf("content type = %q, want application/zip", ct)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if disposition != `attachment; filename="Jane Doe_documents.zip"` {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
	if rec.Body.String() != "PK-zip" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestDocumentHandler_DownloadAllCandidates_Success(t *testing.T) {
	docs := &stubDocumentService{
		archiveAllFn: func(ctx context.Context) ([]byte, error) {
			return []byte("PK-zip-all"), nil
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, rec := newTestContext(t, http.MethodGet, "/download_all_candidates", "")
	authenticate(c, "u1", "admin")

	if err := handler.DownloadAllCandidates(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if disposition != `attachment; filename="all_candidates_documents.zip"` {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
	if rec.Body.String() != "PK-zip-all" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestDocumentHandler_DownloadAllCandidates_Empty(t *testing.T) {
	docs := &stubDocumentService{
		archiveAllFn: func(ctx context.Context) ([]byte, error) {
			return nil, domain.ErrCandidateNotFound
		},
	}
	handler := newDocumentHandler(docs, nil, nil)

	c, _ := newTestContext(t, http.MethodGet, "/download_all_candidates", "")
	authenticate(c, "u1", "admin")

	err := handler.DownloadAllCandidates(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if he.Message != "No candidates found" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}
