package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

// auditLogLimit caps the dashboard's audit feed.
const auditLogLimit = 20

// HomeHandler serves the dashboard payload: candidates, templates and the
// recent audit trail in one call.
type HomeHandler struct {
	candidates ports.CandidateService
	templates  ports.TemplateService
	audit      ports.AuditService
}

func NewHomeHandler(candidates ports.CandidateService, templates ports.TemplateService, audit ports.AuditService) *HomeHandler {
	return &HomeHandler{candidates: candidates, templates: templates, audit: audit}
}

// Home returns the dashboard data, filtered by the optional search query.
//
// @Summary      Dashboard data
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Candidate name/email filter"
// @Success      200     {object}  homeResponse
// @Failure      401     {object}  errorResponse
// @Router       / [get]
func (h *HomeHandler) Home(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	query := c.QueryParam("search")

	candidates, err := h.candidates.Search(ctx, query, role)
	if err != nil {
		return err
	}
	templates, err := h.templates.List(ctx)
	if err != nil {
		return err
	}
	auditLog, err := h.audit.Recent(ctx, auditLogLimit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, homeResponse{
		Candidates: toCandidateListResponse(candidates),
		Templates:  toTemplateListResponse(templates),
		AuditLog:   toAuditLogResponse(auditLog),
		Query:      query,
	})
}
