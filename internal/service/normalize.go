package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/college-schedule-api/internal/dto"
	"github.com/noah-isme/college-schedule-api/internal/models"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

// scheduleIntent is a ScheduleCommand with parsed dates and window.
type scheduleIntent struct {
	AssignmentID string
	VenueID      string
	Date         time.Time
	Window       models.Window
	Topic        *string
	Recurring    bool
	RepeatUntil  time.Time
	SkipHolidays bool
	EditID       string
	Cancelled    *bool
}

// registerScheduleValidations adds the hhmm and ymd rules used by scheduling payloads.
func registerScheduleValidations(v *validator.Validate) {
	mustRegisterValidation(v, "hhmm", func(fl validator.FieldLevel) bool {
		_, err := models.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	mustRegisterValidation(v, "ymd", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
}

// mustRegisterValidation panics when tag cannot be registered; rules are wired at construction.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateLayout, strings.TrimSpace(raw))
}

// normalizeCommand validates req and converts it into an intent. Nothing has touched
// storage when it fails.
func normalizeCommand(validate *validator.Validate, req dto.ScheduleCommand) (*scheduleIntent, error) {
	if err := validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	day, err := parseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	window, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	intent := &scheduleIntent{
		AssignmentID: strings.TrimSpace(req.AssignmentID),
		VenueID:      strings.TrimSpace(req.VenueID),
		Date:         models.DateOnly(day),
		Window:       window,
		Topic:        normalizeTopic(req.Topic),
		SkipHolidays: req.SkipHolidays,
		EditID:       strings.TrimSpace(req.EditID),
		Cancelled:    req.Cancelled,
	}

	if req.Recurring && intent.EditID == "" {
		if strings.TrimSpace(req.RepeatUntil) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "repeat_until is required for recurring schedules")
		}
		until, err := parseDate(req.RepeatUntil)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "repeat_until must be YYYY-MM-DD")
		}
		if !until.After(intent.Date) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "repeat_until must be after the first date")
		}
		intent.Recurring = true
		intent.RepeatUntil = models.DateOnly(until)
	}
	return intent, nil
}

func parseWindow(startRaw, endRaw string) (models.Window, error) {
	start, err := models.ParseTimeOfDay(startRaw)
	if err != nil {
		return models.Window{}, appErrors.Clone(appErrors.ErrValidation, "start_time must be HH:MM")
	}
	end, err := models.ParseTimeOfDay(endRaw)
	if err != nil {
		return models.Window{}, appErrors.Clone(appErrors.ErrValidation, "end_time must be HH:MM")
	}
	window := models.Window{Start: start, End: end}
	if !window.Valid() {
		return models.Window{}, appErrors.Clone(appErrors.ErrValidation, "start_time must be before end_time")
	}
	return window, nil
}

func normalizeTopic(topic *string) *string {
	if topic == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*topic)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
