package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

type stubCandidateService struct {
	addFn    func(ctx context.Context, input ports.CandidateInput) (*domain.Candidate, error)
	searchFn func(ctx context.Context, query, callerRole string) ([]*domain.Candidate, error)
	deleteFn func(ctx context.Context, id, actorID string) error
	clearFn  func(ctx context.Context) (int64, error)
}

func (s *stubCandidateService) Add(ctx context.Context, input ports.CandidateInput) (*domain.Candidate, error) {
	return s.addFn(ctx, input)
}

func (s *stubCandidateService) Search(ctx context.Context, query, callerRole string) ([]*domain.Candidate, error) {
	return s.searchFn(ctx, query, callerRole)
}

func (s *stubCandidateService) Delete(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

func (s *stubCandidateService) Clear(ctx context.Context) (int64, error) {
	return s.clearFn(ctx)
}

func TestCandidateHandler_Add_Success(t *testing.T) {
	stub := &stubCandidateService{
		addFn: func(ctx context.Context, input ports.CandidateInput) (*domain.Candidate, error) {
			if input.Name != "Jane Doe" || input.Email != "jane@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Candidate{
				ID:        "c1",
				Name:      input.Name,
				Email:     input.Email,
				Role:      input.Role,
				StartDate: input.StartDate,
				Documents: []domain.DocumentRef{},
				CreatedAt: time.Now(),
			}, nil
		},
	}
	handler := NewCandidateHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/add_candidate",
		`{"name":"Jane Doe","email":"jane@example.com","role":"Engineer","start_date":"2025-03-01"}`)
	authenticate(c, "u1", "hr")

	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Candidate 'Jane Doe' added successfully!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	candidate, ok := resp["candidate"].(map[string]any)
	if !ok || candidate["id"] != "c1" {
		t.Fatalf("unexpected candidate payload: %+v", resp["candidate"])
	}
}

func TestCandidateHandler_Add_MissingName(t *testing.T) {
	stub := &stubCandidateService{
		addFn: func(ctx context.Context, input ports.CandidateInput) (*domain.Candidate, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewCandidateHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/add_candidate", `{"email":"jane@example.com"}`)
	authenticate(c, "u1", "hr")

	err := handler.Add(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCandidateHandler_Add_BadEmail(t *testing.T) {
	stub := &stubCandidateService{
		addFn: func(ctx context.Context, input ports.CandidateInput) (*domain.Candidate, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewCandidateHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/add_candidate",
		`{"name":"Jane Doe","email":"not-an-email"}`)
	authenticate(c, "u1", "hr")

	err := handler.Add(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

// The audit actor must come from the token claims, not from the payload.
func TestCandidateHandler_Delete_PassesActor(t *testing.T) {
	var gotID, gotActor string
	stub := &stubCandidateService{
		deleteFn: func(ctx context.Context, id, actorID string) error {
			gotID, gotActor = id, actorID
			return nil
		},
	}
	handler := NewCandidateHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/delete_candidate/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	authenticate(c, "u9", "admin")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != "c1" || gotActor != "u9" {
		t.Fatalf("service called with %q/%q, want c1/u9", gotID, gotActor)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCandidateHandler_Delete_Unauthenticated(t *testing.T) {
	stub := &stubCandidateService{
		deleteFn: func(ctx context.Context, id, actorID string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewCandidateHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/delete_candidate/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	err := handler.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestCandidateHandler_Search_PassesRoleAndQuery(t *testing.T) {
	var gotQuery, gotRole string
	stub := &stubCandidateService{
		searchFn: func(ctx context.Context, query, callerRole string) ([]*domain.Candidate, error) {
			gotQuery, gotRole = query, callerRole
			return []*domain.Candidate{{ID: "c1", Name: "Jane Doe", Documents: []domain.DocumentRef{}}}, nil
		},
	}
	handler := NewCandidateHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/search_candidates?q=jane", "")
	authenticate(c, "u1", "staff")

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotQuery != "jane" || gotRole != "staff" {
		t.Fatalf("service called with %q/%q, want jane/staff", gotQuery, gotRole)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	candidates, ok := resp["candidates"].([]any)
	if !ok || len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %v", resp["candidates"])
	}
	if resp["query"] != "jane" {
		t.Fatalf("query echoed as %v", resp["query"])
	}
}

func TestCandidateHandler_Clear_ReportsCount(t *testing.T) {
	stub := &stubCandidateService{
		clearFn: func(ctx context.Context) (int64, error) {
			return 3, nil
		},
	}
	handler := NewCandidateHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/clear_candidates", "")
	authenticate(c, "u1", "admin")

	if err := handler.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Successfully cleared 3 candidates." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["cleared"] != float64(3) {
		t.Fatalf("cleared = %v, want 3", resp["cleared"])
	}
}
