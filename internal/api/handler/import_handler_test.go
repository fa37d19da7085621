package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

type stubImportService struct {
	importFn func(ctx context.Context, filename string, r io.Reader, actorID string) (*ports.ImportSummary, error)
}

func (s *stubImportService) Import(ctx context.Context, filename string, r io.Reader, actorID string) (*ports.ImportSummary, error) {
	return s.importFn(ctx, filename, r, actorID)
}

// newUploadContext builds an echo context carrying a multipart form with a
// single file field.
func newUploadContext(t *testing.T, field, filename, content string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/bulk_upload", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestImportHandler_BulkUpload_Success(t *testing.T) {
	var gotFilename, gotActor, gotContent string
	stub := &stubImportService{
		importFn: func(ctx context.Context, filename string, r io.Reader, actorID string) (*ports.ImportSummary, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read upload: %v", err)
			}
			gotFilename, gotActor, gotContent = filename, actorID, string(data)
			return &ports.ImportSummary{Candidates: 2, Documents: 8}, nil
		},
	}
	handler := NewImportHandler(stub)

	csv := "name,email,role,start_date\nJane Doe,jane@example.com,Engineer,2025-03-01\nJohn Smith,john@example.com,Analyst,2025-04-15\n"
	c, rec := newUploadContext(t, "file", "candidates.csv", csv)
	authenticate(c, "u4", "admin")

	if err := handler.BulkUpload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotFilename != "candidates.csv" || gotActor != "u4" {
		t.Fatalf("service called with %q/%q, want candidates.csv/u4", gotFilename, gotActor)
	}
	if gotContent != csv {
		t.Fatalf("upload body altered: %q", gotContent)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Bulk upload + auto-generation successful!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["candidates"] != float64(2) || resp["documents"] != float64(8) {
		t.Fatalf("unexpected counts: %v / %v", resp["candidates"], resp["documents"])
	}
}

func TestImportHandler_BulkUpload_NoFile(t *testing.T) {
	stub := &stubImportService{
		importFn: func(ctx context.Context, filename string, r io.Reader, actorID string) (*ports.ImportSummary, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewImportHandler(stub)

	// Wrong field name, so FormFile("file") misses.
	c, _ := newUploadContext(t, "upload", "candidates.csv", "name,email\n")
	authenticate(c, "u1", "admin")

	err := handler.BulkUpload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if he.Message != "No file selected" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestImportHandler_BulkUpload_ProcessingError(t *testing.T) {
	stub := &stubImportService{
		importFn: func(ctx context.Context, filename string, r io.Reader, actorID string) (*ports.ImportSummary, error) {
			return nil, errors.New(`row 2: generate offer_pdf: render failed`)
		},
	}
	handler := NewImportHandler(stub)

	c, _ := newUploadContext(t, "file", "candidates.csv", "name,email\nJane Doe,jane@example.com\n")
	authenticate(c, "u1", "admin")

	err := handler.BulkUpload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if he.Message != "Error processing file: row 2: generate offer_pdf: render failed" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestImportHandler_BulkUpload_Unauthenticated(t *testing.T) {
	stub := &stubImportService{
		importFn: func(ctx context.Context, filename string, r io.Reader, actorID string) (*ports.ImportSummary, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewImportHandler(stub)

	c, _ := newUploadContext(t, "file", "candidates.csv", "name,email\n")

	err := handler.BulkUpload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
