package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

// DocumentHandler handles generation, preview, download and email delivery of
// candidate documents.
type DocumentHandler struct {
	documents ports.DocumentService
	notify    ports.NotifyService
	files     ports.FileStore
}

func NewDocumentHandler(documents ports.DocumentService, notify ports.NotifyService, files ports.FileStore) *DocumentHandler {
	return &DocumentHandler{documents: documents, notify: notify, files: files}
}

// Generate renders a document for a candidate from a template.
//
// @Summary      Generate a document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        candidate_id  path      string  true  "Candidate id"
// @Param        template_id   path      string  true  "Template id"
// @Param        doc_type      path      string  true  "Document type, e.g. offer_pdf or offer_docx"
// @Success      200           {object}  generateResponse
// @Failure      400           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /generate_document/{candidate_id}/{template_id}/{doc_type} [post]
func (h *DocumentHandler) Generate(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	docType := c.Param("doc_type")

	ref, err := h.documents.Generate(c.Request().Context(), ports.GenerateInput{
		CandidateID: c.Param("candidate_id"),
		TemplateID:  c.Param("template_id"),
		DocType:     docType,
		ActorID:     actorID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) || errors.Is(err, domain.ErrTemplateNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Candidate or Template not found")
		}
		if errors.Is(err, domain.ErrInvalidDocType) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid document type")
		}
		return err
	}

	return c.JSON(http.StatusOK, generateResponse{
		Message:  fmt.Sprintf("%s generated successfully!", strings.ToUpper(docType)),
		Document: toDocumentRefResponse(*ref),
	})
}

// Download streams a single generated file as an attachment.
//
// @Summary      Download a generated file
// @Tags         documents
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        filename  path      string  true  "Stored file name"
// @Success      200       {file}    file
// @Failure      404       {object}  errorResponse
// @Router       /download/{filename} [get]
func (h *DocumentHandler) Download(c echo.Context) error {
	filename := c.Param("filename")

	if !h.files.DocumentExists(filename) {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}
	path, err := h.files.DocumentPath(filename)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}
	return c.Attachment(path, filename)
}

// Preview returns the assembled letter HTML without storing anything.
//
// @Summary      Preview a letter as HTML
// @Tags         documents
// @Produce      html
// @Security     BearerAuth
// @Param        candidate_id  path      string  true  "Candidate id"
// @Param        template_id   path      string  true  "Template id"
// @Success      200           {string}  string
// @Failure      404           {object}  errorResponse
// @Router       /preview/{candidate_id}/{template_id} [get]
func (h *DocumentHandler) Preview(c echo.Context) error {
	html, err := h.documents.Preview(c.Request().Context(), c.Param("candidate_id"), c.Param("template_id"))
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) || errors.Is(err, domain.ErrTemplateNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Candidate or Template not found")
		}
		return err
	}
	return c.HTML(http.StatusOK, html)
}

// SendEmail mails the candidate's latest document of the given type.
//
// @Summary      Email a document to its candidate
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        candidate_id  path      string  true  "Candidate id"
// @Param        template_id   path      string  true  "Template id"
// @Param        doc_type      path      string  true  "Document type, e.g. offer_pdf"
// @Success      200           {object}  sendEmailResponse
// @Failure      404           {object}  errorResponse
// @Failure      502           {object}  errorResponse
// @Router       /send_email/{candidate_id}/{template_id}/{doc_type} [post]
func (h *DocumentHandler) SendEmail(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	docType := c.Param("doc_type")

	recipient, err := h.notify.SendDocument(c.Request().Context(),
		c.Param("candidate_id"), c.Param("template_id"), docType, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("No %s document found.", strings.ToUpper(docType)))
		}
		return err
	}

	return c.JSON(http.StatusOK, sendEmailResponse{
		Message:   fmt.Sprintf("%s sent successfully to %s", strings.ToUpper(docType), recipient),
		Recipient: recipient,
	})
}

// DownloadAll bundles one candidate's documents into a zip.
//
// @Summary      Download all documents of a candidate
// @Tags         documents
// @Produce      application/zip
// @Security     BearerAuth
// @Param        candidate_id  path      string  true  "Candidate id"
// @Success      200           {file}    file
// @Failure      404           {object}  errorResponse
// @Router       /download_all/{candidate_id} [get]
func (h *DocumentHandler) DownloadAll(c echo.Context) error {
	name, data, err := h.documents.ArchiveCandidate(c.Request().Context(), c.Param("candidate_id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "application/zip", data)
}

// DownloadAllCandidates bundles every candidate's documents into one zip,
// grouped by candidate name.
//
// @Summary      Download every candidate's documents
// @Tags         documents
// @Produce      application/zip
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /download_all_candidates [get]
func (h *DocumentHandler) DownloadAllCandidates(c echo.Context) error {
	data, err := h.documents.ArchiveAll(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No candidates found")
		}
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="all_candidates_documents.zip"`)
	return c.Blob(http.StatusOK, "application/zip", data)
}
