package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

// CandidateHandler handles candidate CRUD and search.
type CandidateHandler struct {
	candidates ports.CandidateService
}

func NewCandidateHandler(candidates ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// Add registers a new candidate.
//
// @Summary      Add a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      candidateRequest  true  "Candidate details"
// @Success      201   {object}  addCandidateResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /add_candidate [post]
func (h *CandidateHandler) Add(c echo.Context) error {
	var req candidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	candidate, err := h.candidates.Add(c.Request().Context(), ports.CandidateInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, addCandidateResponse{
		Message:   fmt.Sprintf("Candidate '%s' added successfully!", candidate.Name),
		Candidate: toCandidateResponse(candidate),
	})
}

// Delete removes a candidate after writing the audit entry.
//
// @Summary      Delete a candidate
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Candidate id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /delete_candidate/{id} [delete]
func (h *CandidateHandler) Delete(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.candidates.Delete(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Candidate deleted successfully!"})
}

// Search filters candidates by name or email.
//
// @Summary      Search candidates
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Name/email filter"
// @Success      200  {object}  searchCandidatesResponse
// @Failure      401  {object}  errorResponse
// @Router       /search_candidates [get]
func (h *CandidateHandler) Search(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	query := c.QueryParam("q")

	candidates, err := h.candidates.Search(c.Request().Context(), query, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchCandidatesResponse{
		Candidates: toCandidateListResponse(candidates),
		Query:      query,
	})
}

// Clear wipes every candidate record.
//
// @Summary      Delete all candidates
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clearedResponse
// @Failure      403  {object}  errorResponse
// @Router       /clear_candidates [post]
func (h *CandidateHandler) Clear(c echo.Context) error {
	n, err := h.candidates.Clear(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clearedResponse{
		Message: fmt.Sprintf("Successfully cleared %d candidates.", n),
		Cleared: n,
	})
}
