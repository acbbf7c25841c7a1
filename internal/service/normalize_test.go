package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-schedule-api/internal/dto"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

func newScheduleValidator() *validator.Validate {
	v := validator.New()
	registerScheduleValidations(v)
	return v
}

func TestNormalizeCommandSingle(t *testing.T) {
	topic := "  Graph traversal  "
	intent, err := normalizeCommand(newScheduleValidator(), dto.ScheduleCommand{
		AssignmentID: " assign-1 ",
		VenueID:      "venue-v",
		Date:         "2024-06-10",
		StartTime:    "10:00",
		EndTime:      "11:00:00",
		Topic:        &topic,
		RepeatUntil:  "2024-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "assign-1", intent.AssignmentID)
	assert.Equal(t, mustDate(t, "2024-06-10"), intent.Date)
	assert.Equal(t, "10:00-11:00", intent.Window.String())
	require.NotNil(t, intent.Topic)
	assert.Equal(t, "Graph traversal", *intent.Topic)
	assert.False(t, intent.Recurring)
	assert.True(t, intent.RepeatUntil.IsZero())
}

func TestNormalizeCommandBlankTopicIsNil(t *testing.T) {
	blank := "   "
	intent, err := normalizeCommand(newScheduleValidator(), dto.ScheduleCommand{
		AssignmentID: "assign-1", VenueID: "venue-v", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00", Topic: &blank,
	})
	require.NoError(t, err)
	assert.Nil(t, intent.Topic)
}

func TestNormalizeCommandRecurring(t *testing.T) {
	intent, err := normalizeCommand(newScheduleValidator(), dto.ScheduleCommand{
		AssignmentID: "assign-1", VenueID: "venue-v", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00",
		Recurring: true, RepeatUntil: "2024-07-01",
	})
	require.NoError(t, err)
	assert.True(t, intent.Recurring)
	assert.Equal(t, mustDate(t, "2024-07-01"), intent.RepeatUntil)
}

func TestNormalizeCommandRejects(t *testing.T) {
	base := dto.ScheduleCommand{AssignmentID: "assign-1", VenueID: "venue-v", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00"}
	cases := map[string]func(cmd *dto.ScheduleCommand){
		"missing venue":          func(cmd *dto.ScheduleCommand) { cmd.VenueID = "" },
		"bad date":               func(cmd *dto.ScheduleCommand) { cmd.Date = "10/06/2024" },
		"bad clock":              func(cmd *dto.ScheduleCommand) { cmd.StartTime = "9am" },
		"end before start":       func(cmd *dto.ScheduleCommand) { cmd.StartTime, cmd.EndTime = "11:00", "10:00" },
		"zero length window":     func(cmd *dto.ScheduleCommand) { cmd.EndTime = "10:00" },
		"recurring without end":  func(cmd *dto.ScheduleCommand) { cmd.Recurring = true },
		"repeat until not after": func(cmd *dto.ScheduleCommand) { cmd.Recurring, cmd.RepeatUntil = true, "2024-06-10" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := base
			mutate(&cmd)
			_, err := normalizeCommand(newScheduleValidator(), cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
}

func TestNormalizeCommandEditIgnoresRecurrence(t *testing.T) {
	intent, err := normalizeCommand(newScheduleValidator(), dto.ScheduleCommand{
		AssignmentID: "assign-1", VenueID: "venue-v", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00",
		Recurring: true, EditID: "entry-1",
	})
	require.NoError(t, err)
	assert.False(t, intent.Recurring)
	assert.Equal(t, "entry-1", intent.EditID)
}

func TestMustRegisterValidationPanicsOnBadTag(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() {
		mustRegisterValidation(v, "", func(fl validator.FieldLevel) bool { return true })
	})
	assert.NotPanics(t, func() { registerScheduleValidations(v) })
}
