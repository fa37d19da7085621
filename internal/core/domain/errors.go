package domain

import "errors"

var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRoleMismatch       = errors.New("role does not match user")
	ErrProtectedUser      = errors.New("protected admin user")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidDocType     = errors.New("invalid document type")
	ErrGenerationFailed   = errors.New("document generation failed")
	ErrEmailFailed        = errors.New("email delivery failed")
)
