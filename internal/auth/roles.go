package auth

import "strings"

// Role enumerates the three mutually exclusive platform roles. The integer
// codes and names are wire-stable: tokens carry both forms and other systems
// key on them.
type Role int

const (
	RoleAdmin     Role = 0
	RoleHR        Role = 1
	RoleApplicant Role = 2
)

var roleNames = map[Role]string{
	RoleAdmin:     "admin",
	RoleHR:        "hr",
	RoleApplicant: "applicant",
}

var rolesByName = map[string]Role{
	"admin":     RoleAdmin,
	"hr":        RoleHR,
	"applicant": RoleApplicant,
}

// Name returns the canonical lowercase role name.
func (r Role) Name() string {
	return roleNames[r]
}

// Code returns the stable integer code.
func (r Role) Code() int {
	return int(r)
}

// Valid reports whether r is one of the three defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// RoleFromCode maps an integer code to a Role. Codes outside the closed set
// are rejected.
func RoleFromCode(code int) (Role, bool) {
	r := Role(code)
	if !r.Valid() {
		return 0, false
	}
	return r, true
}

// RoleFromName maps a role name to a Role, case-insensitively.
func RoleFromName(name string) (Role, bool) {
	r, ok := rolesByName[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// Roles returns all defined roles in code order. The order is part of the
// resolver's membership-probe contract.
func Roles() []Role {
	return []Role{RoleAdmin, RoleHR, RoleApplicant}
}
