package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

// AuditHandler handles the audit log reset.
type AuditHandler struct {
	audit ports.AuditService
}

func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Clear wipes the audit log.
//
// @Summary      Clear the audit log
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clearedResponse
// @Failure      403  {object}  errorResponse
// @Router       /clear_audit_logs [post]
func (h *AuditHandler) Clear(c echo.Context) error {
	n, err := h.audit.Clear(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clearedResponse{
		Message: "All audit logs cleared successfully!",
		Cleared: n,
	})
}
