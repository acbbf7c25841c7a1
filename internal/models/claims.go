package models

import "github.com/golang-jwt/jwt/v5"

// PortalClaims is the bearer token payload issued by the portal session layer.
type PortalClaims struct {
	UserID       string   `json:"user_id"`
	Role         UserRole `json:"role"`
	DepartmentID string   `json:"department_id,omitempty"`
	jwt.RegisteredClaims
}

// Scope converts the claims into an AdminScope.
func (c PortalClaims) Scope() AdminScope {
	return AdminScope{UserID: c.UserID, Role: c.Role, DepartmentID: c.DepartmentID}
}
