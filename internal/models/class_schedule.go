package models

import "time"

// ScheduleEntry is one concrete class occurrence.
type ScheduleEntry struct {
	ID           string    `db:"id" json:"id"`
	AssignmentID string    `db:"assignment_id" json:"assignment_id"`
	VenueID      string    `db:"venue_id" json:"venue_id"`
	ClassDate    time.Time `db:"class_date" json:"class_date"`
	StartTime    TimeOfDay `db:"start_time" json:"start_time"`
	EndTime      TimeOfDay `db:"end_time" json:"end_time"`
	Topic        *string   `db:"topic" json:"topic,omitempty"`
	Cancelled    bool      `db:"is_cancelled" json:"is_cancelled"`
	CreatedBy    string    `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Window returns the entry's time window.
func (e ScheduleEntry) Window() Window {
	return Window{Start: e.StartTime, End: e.EndTime}
}

// ScheduleEntryDetail enriches an entry with assignment and venue descriptors.
type ScheduleEntryDetail struct {
	ScheduleEntry
	SubjectName  string `db:"subject_name" json:"subject_name"`
	DepartmentID string `db:"department_id" json:"department_id"`
	Section      string `db:"section" json:"section"`
	VenueName    string `db:"venue_name" json:"venue_name"`
}

// ScheduleEntryFilter describes query params for listing entries.
type ScheduleEntryFilter struct {
	VenueID          string
	AssignmentID     string
	DepartmentID     string
	From             *time.Time
	To               *time.Time
	IncludeCancelled bool
	Page             int
	PageSize         int
}

// ScheduleConflict describes the existing entry a new window collides with.
type ScheduleConflict struct {
	EntryID      string    `json:"entry_id"`
	AssignmentID string    `json:"assignment_id"`
	VenueID      string    `json:"venue_id"`
	Date         string    `json:"date"`
	StartTime    TimeOfDay `json:"start_time"`
	EndTime      TimeOfDay `json:"end_time"`
}

// NewScheduleConflict projects an existing entry into a conflict descriptor.
func NewScheduleConflict(entry ScheduleEntry) ScheduleConflict {
	return ScheduleConflict{
		EntryID:      entry.ID,
		AssignmentID: entry.AssignmentID,
		VenueID:      entry.VenueID,
		Date:         entry.ClassDate.Format(DateLayout),
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
	}
}

// ScheduleConflictError is returned when a window collides with an existing entry.
type ScheduleConflictError struct {
	Message  string           `json:"message"`
	Conflict ScheduleConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"
