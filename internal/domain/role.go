package domain

import "strings"

// Role enumerates portal staff roles as reported by the auth service.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleReceptionist Role = "Receptionist"
	RoleDoctor       Role = "Doctor"

	// RoleUnknown is what any unrecognised role string becomes. It is granted nothing.
	RoleUnknown Role = ""
)

var knownRoles = map[string]Role{
	"admin":         RoleAdmin,
	"administrator": RoleAdmin,
	"receptionist":  RoleReceptionist,
	"reception":     RoleReceptionist,
	"doctor":        RoleDoctor,
}

// ParseRole normalizes a raw role string. Casing and surrounding whitespace are ignored.
func ParseRole(raw string) Role {
	if role, ok := knownRoles[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return role
	}
	return RoleUnknown
}

// Known reports whether the role is one of the enumerated values.
func (r Role) Known() bool {
	return r != RoleUnknown
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}
