package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/college-schedule-api/internal/models"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

const weekDays = 7

// ExpandWeekly lists first, first+7d, ... strictly before until. A series longer than
// max (when positive) is rejected.
func ExpandWeekly(first, until time.Time, max int) ([]time.Time, error) {
	first, until = models.DateOnly(first), models.DateOnly(until)
	if !until.After(first) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "repeat_until must be after the first date")
	}

	var dates []time.Time
	for day := first; day.Before(until); day = day.AddDate(0, 0, weekDays) {
		dates = append(dates, day)
		if max > 0 && len(dates) > max {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("recurrence exceeds the maximum of %d weekly occurrences", max))
		}
	}
	return dates, nil
}
