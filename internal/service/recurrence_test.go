package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

func TestExpandWeeklyExcludesBoundary(t *testing.T) {
	first := mustDate(t, "2024-06-03")

	dates, err := ExpandWeekly(first, first.AddDate(0, 0, 21), 104)
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.Equal(t, "2024-06-03", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-06-10", dates[1].Format("2006-01-02"))
	assert.Equal(t, "2024-06-17", dates[2].Format("2006-01-02"))
}

func TestExpandWeeklyPartialWeek(t *testing.T) {
	first := mustDate(t, "2024-06-03")

	dates, err := ExpandWeekly(first, first.AddDate(0, 0, 22), 104)
	require.NoError(t, err)
	assert.Len(t, dates, 4)

	dates, err = ExpandWeekly(first, first.AddDate(0, 0, 1), 104)
	require.NoError(t, err)
	assert.Len(t, dates, 1)
}

func TestExpandWeeklyRejectsBadRange(t *testing.T) {
	first := mustDate(t, "2024-06-03")

	_, err := ExpandWeekly(first, first, 104)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = ExpandWeekly(first, first.AddDate(0, 0, -7), 104)
	require.Error(t, err)
}

func TestExpandWeeklyHorizon(t *testing.T) {
	first := mustDate(t, "2024-06-03")

	dates, err := ExpandWeekly(first, first.AddDate(0, 0, 7*104), 104)
	require.NoError(t, err)
	assert.Len(t, dates, 104)

	_, err = ExpandWeekly(first, first.AddDate(0, 0, 7*104+1), 104)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
