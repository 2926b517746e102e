package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of dashboards a session can open
type Role string

// Role codes as constants
const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

// RoleInfo describes a role for listings
type RoleInfo struct {
	Code        Role        `json:"code"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Privileges  []Privilege `json:"privileges"`
}

// DefaultRoles defines the roles known to the system
var DefaultRoles = []RoleInfo{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Read-only oversight across every store",
		Privileges:  RolePrivileges[RoleAdmin],
	},
	{
		Code:        RoleVendor,
		Name:        "Vendor",
		Description: "Data entry for a single store",
		Privileges:  RolePrivileges[RoleVendor],
	},
}

// ParseRole accepts the role codes, including the legacy "vender" spelling
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return RoleAdmin, nil
	case "vendor", "vender":
		return RoleVendor, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Valid reports whether r is one of the declared roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVendor:
		return true
	default:
		return false
	}
}

// HasPrivilege checks if the role grants a specific privilege
func (r Role) HasPrivilege(p Privilege) bool {
	for _, granted := range RolePrivileges[r] {
		if granted == p {
			return true
		}
	}
	return false
}
