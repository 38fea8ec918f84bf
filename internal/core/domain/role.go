package domain

import (
	"encoding/json"
	"fmt"
)

// Role is the privilege tier assigned to a user. Roles are totally
// ordered: Regular < Backoffice < Admin. The ordering is the only
// semantics access checks rely on.
type Role int

const (
	RoleRegular Role = iota
	RoleBackoffice
	RoleAdmin
)

const (
	roleNameRegular    = "Regular"
	roleNameBackoffice = "Backoffice"
	roleNameAdmin      = "Admin"
)

// String returns the canonical role name used in token claims.
func (r Role) String() string {
	switch r {
	case RoleRegular:
		return roleNameRegular
	case RoleBackoffice:
		return roleNameBackoffice
	case RoleAdmin:
		return roleNameAdmin
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Level returns the integer privilege ranking of the role.
func (r Role) Level() int { return int(r) }

// AtLeast reports whether the role grants the privileges of required.
func (r Role) AtLeast(required Role) bool { return r >= required }

// MarshalJSON renders the role by its canonical name.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON parses a canonical role name; unknown names fail.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole converts a claim string back to a Role. Only the three
// canonical names are accepted; anything else is an error, never a
// default.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleNameRegular:
		return RoleRegular, nil
	case roleNameBackoffice:
		return RoleBackoffice, nil
	case roleNameAdmin:
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}
