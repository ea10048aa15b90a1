package get_day_calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getDayCalendar "github.com/m04kA/SMC-SalonService/internal/usecase/get_day_calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getDayCalendar.Request
	resp *getDayCalendar.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getDayCalendar.Request) (*getDayCalendar.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &getDayCalendar.Response{
		Date:               time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ProfessionalFilter: "all",
		Blocks: []getDayCalendar.BlockPosition{{
			Block:    &domain.TimeBlock{ID: "b1", Title: "Almoço", Recurrence: domain.DailyRecurrence(nil)},
			Start:    types.MustTimeString("12:00"),
			End:      types.MustTimeString("13:00"),
			Position: getDayCalendar.Position{Top: 256, Height: 64},
		}},
		Appointments: []getDayCalendar.AppointmentPosition{{
			Appointment: &domain.Appointment{
				ID:         "a1",
				ClientName: "Maria",
				Status:     domain.AppointmentStatusConfirmed,
				Services:   []domain.AppointmentService{{ServiceID: "s1", PriceCharged: decimal.RequireFromString("80")}},
			},
			Start:    types.MustTimeString("09:00"),
			End:      types.MustTimeString("10:00"),
			Position: getDayCalendar.Position{Top: 64, Height: 64},
		}},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar?date=2026-03-10&professionalId=all", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-03-10", uc.got.Date)
	assert.Equal(t, "all", uc.got.ProfessionalID)

	var body DayCalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-10", body.Date)
	assert.Equal(t, 64, body.Window.HourHeightPx)
	require.Len(t, body.Blocks, 1)
	assert.True(t, body.Blocks[0].IsRecurring)
	assert.Equal(t, 256.0, body.Blocks[0].Top)
	require.Len(t, body.Appointments, 1)
	assert.Equal(t, "R$ 80,00", body.Appointments[0].Total.Display)
}

func TestHandle_InvalidDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: getDayCalendar.ErrInvalidDate}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar?date=ontem", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
