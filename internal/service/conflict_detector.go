package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-schedule-api/internal/models"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

type venueDayLister interface {
	ListActiveByVenueDate(ctx context.Context, exec sqlx.ExtContext, venueID string, day time.Time) ([]models.ScheduleEntry, error)
}

// ConflictDetector finds existing entries whose window overlaps a requested one.
type ConflictDetector struct {
	entries venueDayLister
}

// NewConflictDetector constructs a detector over the schedule store.
func NewConflictDetector(entries venueDayLister) *ConflictDetector {
	return &ConflictDetector{entries: entries}
}

// FindConflict returns the earliest non-cancelled entry at venue/day overlapping window, or nil.
// excludeID skips the entry being edited. exec may be a transaction; nil reads from the pool.
// The window must already be valid.
func (d *ConflictDetector) FindConflict(ctx context.Context, exec sqlx.ExtContext, venueID string, day time.Time, window models.Window, excludeID string) (*models.ScheduleEntry, error) {
	entries, err := d.entries.ListActiveByVenueDate(ctx, exec, venueID, day)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to check venue availability")
	}
	for i := range entries {
		entry := entries[i]
		if entry.Cancelled || (excludeID != "" && entry.ID == excludeID) {
			continue
		}
		if entry.Window().Overlaps(window) {
			return &entry, nil
		}
	}
	return nil, nil
}

// newConflictError reports the colliding entry as a ConflictError.
func newConflictError(existing models.ScheduleEntry) error {
	conflict := models.NewScheduleConflict(existing)
	message := fmt.Sprintf("venue already booked %s-%s on %s", existing.StartTime, existing.EndTime, conflict.Date)
	domainErr := &models.ScheduleConflictError{Message: message, Conflict: conflict}
	return appErrors.WithDetails(
		appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "schedule conflict: "+message),
		conflict,
	)
}

// newConcurrentConflictError reports an overlap the database rejected after our own check passed.
func newConcurrentConflictError(entry models.ScheduleEntry) error {
	conflict := models.ScheduleConflict{
		VenueID:   entry.VenueID,
		Date:      entry.ClassDate.Format(models.DateLayout),
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
	}
	message := fmt.Sprintf("venue was booked concurrently for %s-%s on %s", entry.StartTime, entry.EndTime, conflict.Date)
	domainErr := &models.ScheduleConflictError{Message: message, Conflict: conflict}
	return appErrors.WithDetails(
		appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "schedule conflict: "+message),
		conflict,
	)
}
