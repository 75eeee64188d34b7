package model

import "strings"

// Role grants access to management operations.
type Role string

const (
	RoleCollaborator Role = "colaborador"
	RoleManager      Role = "gestor"
	RoleAdmin        Role = "admin"
)

// DefaultRole is assigned at registration.
const DefaultRole = RoleCollaborator

// Level orders roles; unknown roles rank below every known one.
func (r Role) Level() int {
	switch r {
	case RoleCollaborator:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// AtLeast reports whether r grants everything required grants.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && r.Level() >= required.Level()
}

// ParseRole converts raw role value, accepting english aliases.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "colaborador", "collaborator":
		return RoleCollaborator, true
	case "gestor", "manager":
		return RoleManager, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}
