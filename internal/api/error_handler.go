package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/letterforge/docgen-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrCandidateNotFound):
		return http.StatusNotFound, "Candidate not found"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "Template not found"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "Document not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Username already exists."
	case errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusUnauthorized, "Invalid username, password, or role combination."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password."
	case errors.Is(err, domain.ErrProtectedUser):
		return http.StatusForbidden, "You cannot delete the main admin user."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to access this page."
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role"
	case errors.Is(err, domain.ErrInvalidDocType):
		return http.StatusBadRequest, "Invalid document type"
	case errors.Is(err, domain.ErrEmailFailed):
		return http.StatusBadGateway, "Failed to send email."
	case errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusInternalServerError, "Document generation failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
