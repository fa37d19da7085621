package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse carries the human-readable outcome of a mutating call.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin hr staff"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=admin hr staff"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type createUserResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`
}

// --- Candidates ---

type candidateRequest struct {
	Name      string `json:"name"       validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Role      string `json:"role"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type documentRefResponse struct {
	FileType   string `json:"file_type"`
	FilePath   string `json:"file_path"`
	TemplateID string `json:"template_id,omitempty"`
}

type candidateResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Role      string                `json:"role,omitempty"`
	StartDate string                `json:"start_date,omitempty"`
	EndDate   string                `json:"end_date,omitempty"`
	Documents []documentRefResponse `json:"documents"`
	CreatedAt time.Time             `json:"created_at"`
}

type addCandidateResponse struct {
	Message   string            `json:"message"`
	Candidate candidateResponse `json:"candidate"`
}

type searchCandidatesResponse struct {
	Candidates []candidateResponse `json:"candidates"`
	Query      string              `json:"query,omitempty"`
}

type clearedResponse struct {
	Message string `json:"message"`
	Cleared int64  `json:"cleared"`
}

// --- Templates ---

type templateRequest struct {
	Name    string `json:"name"    validate:"required"`
	Type    string `json:"type"    validate:"required,oneof=offer appointment experience certificate"`
	Content string `json:"content" validate:"required"`
}

type templateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type createTemplateResponse struct {
	Message  string           `json:"message"`
	Template templateResponse `json:"template"`
}

type listTemplatesResponse struct {
	Templates []templateResponse `json:"templates"`
}

// --- Documents ---

type generateResponse struct {
	Message  string              `json:"message"`
	Document documentRefResponse `json:"document"`
}

type sendEmailResponse struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
}

// --- Bulk import ---

type importResponse struct {
	Message    string `json:"message"`
	Candidates int    `json:"candidates"`
	Documents  int    `json:"documents"`
}

// --- Audit log ---

type auditEntryResponse struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidate_id,omitempty"`
	CandidateName string    `json:"candidate_name"`
	TemplateID    string    `json:"template_id,omitempty"`
	TemplateName  string    `json:"template_name"`
	Action        string    `json:"action"`
	ActorID       string    `json:"actor_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// --- Dashboard ---

type homeResponse struct {
	Candidates []candidateResponse  `json:"candidates"`
	Templates  []templateResponse   `json:"templates"`
	AuditLog   []auditEntryResponse `json:"audit_log"`
	Query      string               `json:"query,omitempty"`
}
