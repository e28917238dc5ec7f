package client

import (
	"encoding/json"
	"strings"
)

// Role is the authorization level assigned to a user account.
type Role string

const (
	// RoleResident is the default role; the backend also represents it as an
	// absent, null, or empty role field.
	RoleResident Role = "Resident"
	// RoleOperator triages reports and manages districts and events.
	RoleOperator Role = "Operator"
	// RoleAdmin has everything an operator has.
	RoleAdmin Role = "Admin"
	// RoleInspector is display-only and not route-gated.
	RoleInspector Role = "Inspector"
)

// NormalizeRole coerces the backend's inconsistent role serialization into a
// canonical value: absent, null, and empty roles all mean Resident. Known
// roles are matched case-insensitively; unknown values pass through.
func NormalizeRole(raw string) Role {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return RoleResident
	}
	for _, role := range AllRoles() {
		if strings.EqualFold(trimmed, string(role)) {
			return role
		}
	}
	return Role(trimmed)
}

// ParseRole safely parses a string into a Role
func ParseRole(raw string) (Role, bool) {
	role := NormalizeRole(raw)
	return role, role.IsValid()
}

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleResident, RoleOperator, RoleAdmin, RoleInspector:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the role grants access to the operator console.
func (r Role) IsOperator() bool {
	return r == RoleOperator || r == RoleAdmin
}

// In reports whether the role is a member of the given allow-list.
func (r Role) In(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// AllRoles returns all predefined roles
func AllRoles() []Role {
	return []Role{
		RoleResident,
		RoleOperator,
		RoleAdmin,
		RoleInspector,
	}
}

// NormalizeRoles maps NormalizeRole over a list and drops duplicates. Allow
// lists declared with the legacy sentinel set {Resident, null, ""} collapse
// to {Resident}.
func NormalizeRoles(roles []Role) []Role {
	if len(roles) == 0 {
		return nil
	}

	seen := make(map[Role]struct{}, len(roles))
	normalized := make([]Role, 0, len(roles))
	for _, role := range roles {
		canonical := NormalizeRole(string(role))
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		normalized = append(normalized, canonical)
	}
	return normalized
}

// UnmarshalJSON normalizes the role at the ingestion boundary so the rest of
// the client never has to special-case null or empty roles.
func (r *Role) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RoleResident
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NormalizeRole(raw)
	return nil
}
