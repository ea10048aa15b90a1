package get_day_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	profA = "7b1f3c8e-2a51-4c1a-9d51-0d7c8a9e1f01"
	profB = "0f9e8d7c-6b5a-4e3d-8c1b-2a3b4c5d6e7f"
)

var brt = time.FixedZone("BRT", -3*60*60)

// 2026-03-10 - вторник, 2026-03-14 - суббота
func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, brt)
}

func at(d, hour, minute int) time.Time {
	return time.Date(2026, 3, d, hour, minute, 0, 0, brt)
}

func oneOff(id string, start, end time.Time) *domain.TimeBlock {
	return &domain.TimeBlock{
		ID:             id,
		ProfessionalID: profA,
		Title:          "Bloqueio",
		StartAt:        start,
		EndAt:          end,
		Recurrence:     domain.NoRecurrence(),
	}
}

func weekly(t *testing.T, id string, days []int, start, end time.Time, until *time.Time) *domain.TimeBlock {
	set, err := domain.NewWeekdaySet(days)
	require.NoError(t, err)
	rec, err := domain.WeeklyRecurrence(set, until)
	require.NoError(t, err)
	return &domain.TimeBlock{
		ID:             id,
		ProfessionalID: profA,
		Title:          "Almoço",
		StartAt:        start,
		EndAt:          end,
		Recurrence:     rec,
	}
}

func TestLayoutBlocksForDay_WeeklyWeekdaysSkipWeekend(t *testing.T) {
	block := weekly(t, "w1", []int{1, 2, 3, 4, 5}, at(2, 12, 0), at(2, 13, 0), nil)

	assert.Empty(t, LayoutBlocksForDay([]*domain.TimeBlock{block}, day(14), "all"))
	assert.Empty(t, LayoutBlocksForDay([]*domain.TimeBlock{block}, day(15), "all"))

	got := LayoutBlocksForDay([]*domain.TimeBlock{block}, day(16), "all")
	require.Len(t, got, 1)
	assert.Equal(t, "12:00", got[0].Start.String())
	assert.Equal(t, "13:00", got[0].End.String())
	assert.InDelta(t, 256.0, got[0].Top, 0.001)
	assert.InDelta(t, 64.0, got[0].Height, 0.001)
}

func TestLayoutBlocksForDay_DailyUntilDate(t *testing.T) {
	until := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	block := oneOff("d1", at(1, 9, 0), at(1, 9, 30))
	block.Recurrence = domain.DailyRecurrence(&until)

	assert.Len(t, LayoutBlocksForDay([]*domain.TimeBlock{block}, day(12), "all"), 1)
	assert.Empty(t, LayoutBlocksForDay([]*domain.TimeBlock{block}, day(13), "all"))
}

func TestLayoutBlocksForDay_MultiDayBlock(t *testing.T) {
	block := oneOff("m1", at(9, 14, 0), at(11, 10, 0))
	blocks := []*domain.TimeBlock{block}

	first := LayoutBlocksForDay(blocks, day(9), "all")
	require.Len(t, first, 1)
	assert.Equal(t, "14:00", first[0].Start.String())
	assert.Equal(t, "20:00", first[0].End.String())
	assert.InDelta(t, 384.0, first[0].Top, 0.001)
	assert.InDelta(t, 384.0, first[0].Height, 0.001)

	middle := LayoutBlocksForDay(blocks, day(10), "all")
	require.Len(t, middle, 1)
	assert.Equal(t, "08:00", middle[0].Start.String())
	assert.Equal(t, "20:00", middle[0].End.String())
	assert.InDelta(t, 0.0, middle[0].Top, 0.001)
	assert.InDelta(t, 768.0, middle[0].Height, 0.001)

	last := LayoutBlocksForDay(blocks, day(11), "all")
	require.Len(t, last, 1)
	assert.Equal(t, "08:00", last[0].Start.String())
	assert.Equal(t, "10:00", last[0].End.String())
	assert.InDelta(t, 128.0, last[0].Height, 0.001)

	assert.Empty(t, LayoutBlocksForDay(blocks, day(8), "all"))
	assert.Empty(t, LayoutBlocksForDay(blocks, day(12), "all"))
}

func TestLayoutBlocksForDay_Clipping(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		visible    bool
		wantStart  string
		wantEnd    string
		wantTop    float64
		wantHeight float64
	}{
		{name: "entirely before window", start: at(10, 6, 0), end: at(10, 7, 30)},
		{name: "ends at window start", start: at(10, 7, 0), end: at(10, 8, 0)},
		{name: "starts at window end", start: at(10, 20, 0), end: at(10, 21, 0)},
		{
			name: "crosses window start", start: at(10, 7, 0), end: at(10, 9, 0),
			visible: true, wantStart: "08:00", wantEnd: "09:00", wantTop: 0, wantHeight: 64,
		},
		{
			name: "crosses window end", start: at(10, 19, 0), end: at(10, 22, 0),
			visible: true, wantStart: "19:00", wantEnd: "20:00", wantTop: 704, wantHeight: 64,
		},
		{
			name: "short block gets min height", start: at(10, 10, 0), end: at(10, 10, 10),
			visible: true, wantStart: "10:00", wantEnd: "10:10", wantTop: 128, wantHeight: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LayoutBlocksForDay([]*domain.TimeBlock{oneOff("c", tt.start, tt.end)}, day(10), "all")
			if !tt.visible {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantStart, got[0].Start.String())
			assert.Equal(t, tt.wantEnd, got[0].End.String())
			assert.InDelta(t, tt.wantTop, got[0].Top, 0.001)
			assert.InDelta(t, tt.wantHeight, got[0].Height, 0.001)
		})
	}
}

func TestLayoutBlocksForDay_ProfessionalFilter(t *testing.T) {
	a := oneOff("a", at(10, 9, 0), at(10, 10, 0))
	b := oneOff("b", at(10, 11, 0), at(10, 12, 0))
	b.ProfessionalID = profB
	blocks := []*domain.TimeBlock{a, b}

	assert.Len(t, LayoutBlocksForDay(blocks, day(10), "all"), 2)
	assert.Len(t, LayoutBlocksForDay(blocks, day(10), ""), 2)

	got := LayoutBlocksForDay(blocks, day(10), profB)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Block.ID)
}

func TestLayoutBlocksForDay_ConvertsToSalonTimezone(t *testing.T) {
	// 15:00 UTC = 12:00 BRT
	block := oneOff("tz", time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC))

	got := LayoutBlocksForDay([]*domain.TimeBlock{block}, day(10), "all")
	require.Len(t, got, 1)
	assert.Equal(t, "12:00", got[0].Start.String())
}

func TestPositionAppointment(t *testing.T) {
	pos, ok := PositionAppointment(&domain.Appointment{StartAt: at(10, 9, 30), EndAt: at(10, 10, 30)})
	require.True(t, ok)
	assert.InDelta(t, 96.0, pos.Top, 0.001)
	assert.InDelta(t, 64.0, pos.Height, 0.001)

	pos, ok = PositionAppointment(&domain.Appointment{StartAt: at(10, 9, 0), EndAt: at(10, 9, 15)})
	require.True(t, ok)
	assert.InDelta(t, 32.0, pos.Height, 0.001)

	_, ok = PositionAppointment(&domain.Appointment{StartAt: at(10, 20, 30), EndAt: at(10, 21, 0)})
	assert.False(t, ok)
}

func TestLayoutAppointments_SkipsCancelledKeepsOrder(t *testing.T) {
	apts := []*domain.Appointment{
		{ID: "1", Status: domain.AppointmentStatusConfirmed, StartAt: at(10, 10, 0), EndAt: at(10, 11, 0)},
		{ID: "2", Status: domain.AppointmentStatusCancelled, StartAt: at(10, 10, 0), EndAt: at(10, 11, 0)},
		{ID: "3", Status: domain.AppointmentStatusCompleted, StartAt: at(10, 9, 0), EndAt: at(10, 10, 30)},
		{ID: "4", Status: domain.AppointmentStatusConfirmed, StartAt: at(10, 6, 0), EndAt: at(10, 7, 0)},
	}

	got := LayoutAppointments(apts)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Appointment.ID)
	assert.Equal(t, "3", got[1].Appointment.ID)
	assert.Equal(t, "09:00", got[1].Start.String())
	assert.Equal(t, "10:30", got[1].End.String())
}
