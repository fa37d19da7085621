package domain

import "time"

// TemplateType classifies the letters a template can produce.
type TemplateType string

const (
	TypeOffer       TemplateType = "offer"
	TypeAppointment TemplateType = "appointment"
	TypeExperience  TemplateType = "experience"
	TypeCertificate TemplateType = "certificate"
)

// ValidTemplateType reports whether s names a known letter category.
func ValidTemplateType(s string) bool {
	switch TemplateType(s) {
	case TypeOffer, TypeAppointment, TypeExperience, TypeCertificate:
		return true
	}
	return false
}

// Template is an author-editable letter body with {{placeholder}} fields.
// For DOCX output the content may instead name a .docx skeleton file under
// the asset directory; anything else falls back to a plain-paragraph render.
type Template struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      TemplateType `json:"type"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}
