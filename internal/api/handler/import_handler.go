package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

// ImportHandler handles spreadsheet uploads.
type ImportHandler struct {
	importer ports.ImportService
}

func NewImportHandler(importer ports.ImportService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// BulkUpload imports a candidate spreadsheet and generates a PDF and a DOCX
// per candidate and template.
//
// @Summary      Bulk import candidates from CSV/XLSX
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Spreadsheet with name, email, role, start_date, end_date columns"
// @Success      200   {object}  importResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /bulk_upload [post]
func (h *ImportHandler) BulkUpload(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file selected")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file selected")
	}
	defer src.Close()

	summary, err := h.importer.Import(c.Request().Context(), fileHeader.Filename, src, actorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Error processing file: %v", err))
	}

	return c.JSON(http.StatusOK, importResponse{
		Message:    "Bulk upload + auto-generation successful!",
		Candidates: summary.Candidates,
		Documents:  summary.Documents,
	})
}
