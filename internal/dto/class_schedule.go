package dto

import "github.com/noah-isme/college-schedule-api/internal/models"

// ScheduleCommand is the scheduling intent submitted by the portal. An EditID turns the
// command into an edit of that entry.
type ScheduleCommand struct {
	AssignmentID string  `json:"assignment_id" validate:"required"`
	VenueID      string  `json:"venue_id" validate:"required"`
	Date         string  `json:"date" validate:"required,ymd"`
	StartTime    string  `json:"start_time" validate:"required,hhmm"`
	EndTime      string  `json:"end_time" validate:"required,hhmm"`
	Topic        *string `json:"topic,omitempty" validate:"omitempty,max=255"`
	Recurring    bool    `json:"recurring"`
	RepeatUntil  string  `json:"repeat_until,omitempty" validate:"omitempty,ymd"`
	SkipHolidays bool    `json:"skip_holidays"`
	EditID       string  `json:"edit_id,omitempty"`
	Cancelled    *bool   `json:"cancelled,omitempty"`
}

// ScheduleStatus summarises a scheduling outcome.
type ScheduleStatus string

const (
	StatusCreated  ScheduleStatus = "CREATED"
	StatusUpdated  ScheduleStatus = "UPDATED"
	StatusPartial  ScheduleStatus = "PARTIAL"
	StatusRejected ScheduleStatus = "REJECTED"
)

// SkipReason explains why an occurrence was not created.
type SkipReason string

const (
	SkipHoliday  SkipReason = "HOLIDAY"
	SkipConflict SkipReason = "CONFLICT"
	SkipError    SkipReason = "ERROR"
)

// SkippedOccurrence is one candidate date that was not persisted.
type SkippedOccurrence struct {
	Date     string                   `json:"date"`
	Reason   SkipReason               `json:"reason"`
	Detail   string                   `json:"detail"`
	Holiday  *models.HolidayMatch     `json:"holiday,omitempty"`
	Conflict *models.ScheduleConflict `json:"conflict,omitempty"`
}

// ScheduleResult reports the outcome of a scheduling command.
type ScheduleResult struct {
	Status          ScheduleStatus         `json:"status"`
	CandidateCount  int                    `json:"candidate_count"`
	CreatedCount    int                    `json:"created_count"`
	SkippedHoliday  int                    `json:"skipped_holiday"`
	SkippedConflict int                    `json:"skipped_conflict"`
	Failed          int                    `json:"failed"`
	Skipped         []SkippedOccurrence    `json:"skipped"`
	Entries         []models.ScheduleEntry `json:"entries,omitempty"`
	Message         string                 `json:"message"`
}

// AvailabilityResult answers whether a venue window is free.
type AvailabilityResult struct {
	Available bool                     `json:"available"`
	Conflict  *models.ScheduleConflict `json:"conflict,omitempty"`
}

// ScheduleListQuery binds the list endpoint's query string. Dates are parsed by the handler.
type ScheduleListQuery struct {
	VenueID          string `form:"venue_id"`
	AssignmentID     string `form:"assignment_id"`
	DepartmentID     string `form:"department_id"`
	From             string `form:"from"`
	To               string `form:"to"`
	IncludeCancelled bool   `form:"include_cancelled"`
	Page             int    `form:"page" binding:"omitempty,min=1"`
	PageSize         int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// AvailabilityQuery binds the availability query string. Dates and clock times are parsed
// by the handler.
type AvailabilityQuery struct {
	VenueID   string `form:"venue_id" binding:"required"`
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
	ExcludeID string `form:"exclude_id"`
}
