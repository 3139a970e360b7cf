package domain

// Role represents an employee role in the portal
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// User is the employee profile as served by the auth backend.
type User struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"full_name,omitempty"`
	IsActive           bool   `json:"is_active"`
	IsConfirmedByAdmin bool   `json:"is_confirmed_by_admin"`
	Role               Role   `json:"role"`
}

// CanUseWorkerArea reports whether a worker account has been cleared for the
// operational dashboard. Admins have their own area and are not covered here.
func (u *User) CanUseWorkerArea() bool {
	return u.Role == RoleWorker && u.IsActive && u.IsConfirmedByAdmin
}

// DisplayName returns the full name when present, otherwise the email.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
