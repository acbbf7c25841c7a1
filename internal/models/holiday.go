package models

import (
	"time"

	"github.com/lib/pq"
)

// Holiday is a calendar exclusion rule, optionally recurring and optionally scoped.
type Holiday struct {
	ID                    string         `db:"id" json:"id"`
	Name                  string         `db:"name" json:"name"`
	Date                  time.Time      `db:"holiday_date" json:"date"`
	Description           string         `db:"description" json:"description"`
	IsRecurring           bool           `db:"is_recurring" json:"is_recurring"`
	RecurringYear         *int           `db:"recurring_year" json:"recurring_year,omitempty"`
	ApplicableDepartments pq.StringArray `db:"applicable_departments" json:"applicable_departments,omitempty"`
	ApplicableBatches     pq.StringArray `db:"applicable_batches" json:"applicable_batches,omitempty"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}

// OccursOn reports whether the holiday falls on day.
func (h Holiday) OccursOn(day time.Time) bool {
	if !h.IsRecurring {
		return SameDate(h.Date, day)
	}
	if h.Date.Month() != day.Month() || h.Date.Day() != day.Day() {
		return false
	}
	if h.RecurringYear != nil {
		return *h.RecurringYear == day.Year()
	}
	return true
}

// AppliesTo reports whether the holiday covers the department and batch. An empty
// argument means "any"; an empty list on the holiday means universal.
func (h Holiday) AppliesTo(departmentID, batchID string) bool {
	return listAllows(h.ApplicableDepartments, departmentID) && listAllows(h.ApplicableBatches, batchID)
}

func listAllows(list []string, id string) bool {
	if len(list) == 0 || id == "" {
		return true
	}
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}

// HolidayFilter narrows down holiday listings.
type HolidayFilter struct {
	From         *time.Time
	To           *time.Time
	DepartmentID string
	Recurring    *bool
	Page         int
	PageSize     int
}

// HolidayMatch is the outcome of a holiday lookup.
type HolidayMatch struct {
	HolidayID   string    `json:"holiday_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	BatchID     string    `json:"batch_id,omitempty"`
}

// SameDate compares calendar days ignoring clock and location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
