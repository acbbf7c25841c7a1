package models

import "github.com/noah-isme/college-schedule-api/pkg/sqlfilter"

// UserRole represents the portal roles relevant to scheduling.
type UserRole string

const (
	RoleSuperAdmin      UserRole = "SUPERADMIN"
	RoleDepartmentAdmin UserRole = "DEPARTMENT_ADMIN"
)

// AdminScope is the caller's data-visibility capability, passed into every scoped query.
type AdminScope struct {
	UserID       string   `json:"user_id"`
	Role         UserRole `json:"role"`
	DepartmentID string   `json:"department_id,omitempty"`
}

// Unrestricted reports whether the scope sees every department.
func (s AdminScope) Unrestricted() bool {
	return s.Role == RoleSuperAdmin
}

// AllowsDepartment reports whether rows of departmentID are visible.
func (s AdminScope) AllowsDepartment(departmentID string) bool {
	if s.Unrestricted() {
		return true
	}
	return s.DepartmentID != "" && s.DepartmentID == departmentID
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// Filter restricts a query to the scope's department through column.
func (s AdminScope) Filter(column string) *sqlfilter.Filter {
	f := sqlfilter.New()
	if !s.Unrestricted() {
		f.Eq(column, s.DepartmentID)
	}
	return f
}
