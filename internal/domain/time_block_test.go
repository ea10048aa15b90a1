package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyRecurrence_RejectsEmptyDays(t *testing.T) {
	_, err := WeeklyRecurrence(0, nil)
	assert.ErrorIs(t, err, ErrEmptyWeekdays)
}

func TestNewWeekdaySet_RejectsOutOfRange(t *testing.T) {
	_, err := NewWeekdaySet([]int{1, 7})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = NewWeekdaySet([]int{-1})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestRecurrence_WeekdaysOnly(t *testing.T) {
	days, err := NewWeekdaySet([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	rec, err := WeeklyRecurrence(days, nil)
	require.NoError(t, err)

	// 2030-06-03 - понедельник
	assert.True(t, rec.AppliesOn(date(2030, 6, 3)))
	assert.True(t, rec.AppliesOn(date(2030, 6, 7)))
	assert.False(t, rec.AppliesOn(date(2030, 6, 8)), "saturday")
	assert.False(t, rec.AppliesOn(date(2030, 6, 9)), "sunday")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rec.Days().Days())
}

func TestRecurrence_UntilIsInclusive(t *testing.T) {
	rec := DailyRecurrence(ptr.Ptr(date(2030, 6, 10)))

	assert.True(t, rec.AppliesOn(date(2030, 6, 10)))
	assert.True(t, rec.AppliesOn(time.Date(2030, 6, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, rec.AppliesOn(date(2030, 6, 11)))
}

func TestRecurrence_ZeroValueIsNone(t *testing.T) {
	var rec Recurrence

	assert.Equal(t, RecurrenceNone, rec.Kind())
	assert.False(t, rec.IsRecurring())
	assert.False(t, rec.AppliesOn(date(2030, 6, 10)))
}

func TestRecurrenceFromColumns(t *testing.T) {
	weekly := "weekly"
	daily := "daily"
	monthly := "monthly"

	rec, err := RecurrenceFromColumns(false, &weekly, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RecurrenceNone, rec.Kind())

	rec, err = RecurrenceFromColumns(true, &daily, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RecurrenceDaily, rec.Kind())

	rec, err = RecurrenceFromColumns(true, &weekly, []int64{0, 6}, nil)
	require.NoError(t, err)
	assert.True(t, rec.Days().Contains(time.Sunday))
	assert.True(t, rec.Days().Contains(time.Saturday))

	_, err = RecurrenceFromColumns(true, &weekly, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyWeekdays)

	_, err = RecurrenceFromColumns(true, &monthly, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownRecurrenceType)

	_, err = RecurrenceFromColumns(true, nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownRecurrenceType)
}
