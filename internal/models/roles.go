package models

import "fmt"

// Role is one of the five conventional Dota positions, ordered 1-5 by
// farm priority. Position 1 carries the most resource responsibility,
// position 5 the least.
type Role string

const (
	RoleCarry       Role = "carry"
	RoleMid         Role = "mid"
	RoleOfflane     Role = "offlane"
	RoleSupport     Role = "support"
	RoleHardSupport Role = "hard_support"
)

// RolesByFarmPriority lists the five roles from position 1 to position 5.
// Index i is the role assigned to the player with the i-th highest net
// worth on their team.
var RolesByFarmPriority = [5]Role{
	RoleCarry,
	RoleMid,
	RoleOfflane,
	RoleSupport,
	RoleHardSupport,
}

// ParseRole validates a role string from an API request.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCarry, RoleMid, RoleOfflane, RoleSupport, RoleHardSupport:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Display returns a human-readable role name ("hard_support" -> "Hard Support").
func (r Role) Display() string {
	switch r {
	case RoleCarry:
		return "Carry"
	case RoleMid:
		return "Mid"
	case RoleOfflane:
		return "Offlane"
	case RoleSupport:
		return "Support"
	case RoleHardSupport:
		return "Hard Support"
	}
	return string(r)
}
