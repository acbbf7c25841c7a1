package dto

import "github.com/noah-isme/college-schedule-api/internal/models"

// HolidayRequest creates or replaces a holiday.
type HolidayRequest struct {
	Name                  string   `json:"name" validate:"required,max=150"`
	Date                  string   `json:"date" validate:"required,ymd"`
	Description           string   `json:"description" validate:"max=500"`
	IsRecurring           bool     `json:"is_recurring"`
	RecurringYear         *int     `json:"recurring_year,omitempty" validate:"omitempty,min=1900,max=2999"`
	ApplicableDepartments []string `json:"applicable_departments" validate:"omitempty,dive,max=64"`
	ApplicableBatches     []string `json:"applicable_batches" validate:"omitempty,dive,max=64"`
}

// HolidayListQuery binds the holiday list query string.
type HolidayListQuery struct {
	From         string `form:"from"`
	To           string `form:"to"`
	DepartmentID string `form:"department_id"`
	Recurring    *bool  `form:"recurring"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// HolidayCheckResult answers whether a date is a holiday for a department and batch.
type HolidayCheckResult struct {
	Date    string               `json:"date"`
	Holiday bool                 `json:"holiday"`
	Match   *models.HolidayMatch `json:"match,omitempty"`
}
