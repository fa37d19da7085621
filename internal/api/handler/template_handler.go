package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

// TemplateHandler handles letter template CRUD.
type TemplateHandler struct {
	templates ports.TemplateService
}

func NewTemplateHandler(templates ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List returns every letter template.
//
// @Summary      List templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTemplatesResponse
// @Failure      401  {object}  errorResponse
// @Router       /templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	templates, err := h.templates.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listTemplatesResponse{Templates: toTemplateListResponse(templates)})
}

// Create stores a new letter template.
//
// @Summary      Create a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      templateRequest  true  "Template details"
// @Success      201   {object}  createTemplateResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	template, err := h.templates.Create(c.Request().Context(), ports.TemplateInput{
		Name:    req.Name,
		Type:    req.Type,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createTemplateResponse{
		Message:  "Template created successfully!",
		Template: toTemplateResponse(template),
	})
}

// Update edits a template in place.
//
// @Summary      Edit a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Template id"
// @Param        body  body      templateRequest  true  "New template contents"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /edit_template/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.TemplateInput{Name: req.Name, Type: req.Type, Content: req.Content}
	if err := h.templates.Update(c.Request().Context(), c.Param("id"), input, actorID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Template updated successfully!"})
}

// Delete removes a template. Already generated documents keep working.
//
// @Summary      Delete a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /delete_template/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.templates.Delete(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Template deleted successfully!"})
}
