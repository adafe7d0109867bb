package models

type UserRole string

const (
	RoleEditor UserRole = "editor"
	RoleViewer UserRole = "viewer"
)

// Editor is the single account allowed to mutate the MAGERIT matrix when
// editor authentication is enabled. It is configured, not stored.
type Editor struct {
	Username     string
	PasswordHash string // bcrypt
	Role         UserRole
}
