package handler

import (
	"github.com/letterforge/docgen-service/internal/core/domain"
	"github.com/letterforge/docgen-service/internal/core/ports"
)

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toCandidateResponse(c *domain.Candidate) candidateResponse {
	docs := make([]documentRefResponse, len(c.Documents))
	for i, doc := range c.Documents {
		docs[i] = toDocumentRefResponse(doc)
	}
	return candidateResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Role:      c.Role,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Documents: docs,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func toCandidateListResponse(candidates []*domain.Candidate) []candidateResponse {
	out := make([]candidateResponse, len(candidates))
	for i, c := range candidates {
		out[i] = toCandidateResponse(c)
	}
	return out
}

func toDocumentRefResponse(d domain.DocumentRef) documentRefResponse {
	return documentRefResponse{
		FileType:   d.FileType,
		FilePath:   d.FilePath,
		TemplateID: d.TemplateID,
	}
}

func toTemplateResponse(t *domain.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Type:      string(t.Type),
		Content:   t.Content,
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func toTemplateListResponse(templates []*domain.Template) []templateResponse {
	out := make([]templateResponse, len(templates))
	for i, t := range templates {
		out[i] = toTemplateResponse(t)
	}
	return out
}

func toAuditLogResponse(views []ports.AuditView) []auditEntryResponse {
	out := make([]auditEntryResponse, len(views))
	for i, v := range views {
		out[i] = auditEntryResponse{
			ID:            v.ID,
			CandidateID:   v.CandidateID,
			CandidateName: v.CandidateName,
			TemplateID:    v.TemplateID,
			TemplateName:  v.TemplateName,
			Action:        v.Action,
			ActorID:       v.ActorID,
			Timestamp:     v.Timestamp.UTC(),
		}
	}
	return out
}
