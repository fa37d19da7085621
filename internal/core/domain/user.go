package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleHR    = "hr"
	RoleStaff = "staff"
)

// Role tiers wired into the RBAC middleware. Each tier mirrors one of the
// composed access policies: admin-only, admin-or-hr, any authenticated role.
var (
	AdminOnly = []string{RoleAdmin}
	AdminOrHR = []string{RoleAdmin, RoleHR}
	AnyRole   = []string{RoleAdmin, RoleHR, RoleStaff}
)

// ProtectedAdminUsername is the bootstrap root admin. It can never be deleted.
const ProtectedAdminUsername = "Admin"

// ValidRole reports whether s is one of the three known access tiers.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleHR || s == RoleStaff
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
