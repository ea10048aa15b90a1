package timeblock

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

var testDB *storagetest.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = storagetest.Open("salon_test_timeblock")
	if err != nil {
		log.Fatalf("failed to prepare test database: %v", err)
	}

	code := m.Run()
	if err := testDB.Close(); err != nil {
		log.Printf("failed to drop test schema: %v", err)
	}
	os.Exit(code)
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

// Вторник
var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type dbFixture struct {
	repo         *Repository
	logger       *recordingLogger
	professional string
}

func newDBFixture(t *testing.T) *dbFixture {
	t.Helper()
	db := storagetest.Require(t, testDB)

	professionalID := uuid.NewString()
	require.NoError(t, storagetest.SeedProfessional(context.Background(), db, professionalID, "Ana", "40"))

	logger := &recordingLogger{}
	return &dbFixture{
		repo:         NewRepository(dbmetrics.Wrap(db, nil), logger),
		logger:       logger,
		professional: professionalID,
	}
}

func (f *dbFixture) create(t *testing.T, title string, startAt time.Time, rec domain.Recurrence) *domain.TimeBlock {
	t.Helper()
	block, err := f.repo.Create(context.Background(), &domain.TimeBlock{
		ID:             uuid.NewString(),
		ProfessionalID: f.professional,
		Title:          title,
		StartAt:        startAt,
		EndAt:          startAt.Add(time.Hour),
		Recurrence:     rec,
	})
	require.NoError(t, err)
	return block
}

func TestRepository_ListForDay(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()

	weekdays, err := domain.NewWeekdaySet([]int{int(time.Tuesday)})
	require.NoError(t, err)
	weekly, err := domain.WeeklyRecurrence(weekdays, nil)
	require.NoError(t, err)

	lunch := f.create(t, "Almoço", day.AddDate(0, 0, -30).Add(12*time.Hour), domain.DailyRecurrence(nil))
	meeting := f.create(t, "Reunião", day.AddDate(0, 0, -14).Add(8*time.Hour), weekly)
	course := f.create(t, "Curso", day.Add(15*time.Hour), domain.NoRecurrence())
	f.create(t, "Férias", day.AddDate(0, 0, 3), domain.NoRecurrence())
	f.create(t, "Antigo", day.AddDate(0, 0, -60), domain.DailyRecurrence(ptr.Ptr(day.AddDate(0, 0, -1))))

	blocks, err := f.repo.ListForDay(ctx, day, day.AddDate(0, 0, 1), &f.professional)
	require.NoError(t, err)

	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{lunch.ID, meeting.ID, course.ID}, ids)

	for _, b := range blocks {
		if b.ID == meeting.ID {
			assert.Equal(t, domain.RecurrenceWeekly, b.Recurrence.Kind())
			assert.True(t, b.Recurrence.Days().Contains(time.Tuesday))
		}
	}
	assert.Empty(t, f.logger.warnings)
}

func TestRepository_ListByProfessionalAndDelete(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()

	once := f.create(t, "Curso", day.Add(15*time.Hour), domain.NoRecurrence())
	daily := f.create(t, "Almoço", day.Add(12*time.Hour), domain.DailyRecurrence(nil))

	blocks, err := f.repo.ListByProfessional(ctx, f.professional)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, daily.ID, blocks[0].ID)
	assert.Equal(t, once.ID, blocks[1].ID)

	require.NoError(t, f.repo.Delete(ctx, once.ID))
	assert.ErrorIs(t, f.repo.Delete(ctx, once.ID), ErrTimeBlockNotFound)

	blocks, err = f.repo.ListByProfessional(ctx, f.professional)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, daily.ID, blocks[0].ID)
}

func TestRepository_SkipsInvalidRecurrenceWithWarning(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()

	valid := f.create(t, "Almoço", day.Add(12*time.Hour), domain.DailyRecurrence(nil))

	brokenID := uuid.NewString()
	_, err := testDB.ExecContext(ctx,
		`INSERT INTO time_blocks (id, professional_id, title, start_at, end_at, is_recurring)
		 VALUES ($1, $2, 'Quebrado', $3, $4, TRUE)`,
		brokenID, f.professional, day.Add(9*time.Hour), day.Add(10*time.Hour))
	require.NoError(t, err)

	blocks, err := f.repo.ListByProfessional(ctx, f.professional)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, valid.ID, blocks[0].ID)

	require.Len(t, f.logger.warnings, 1)
	assert.Contains(t, f.logger.warnings[0], "ListByProfessional")
	assert.Contains(t, f.logger.warnings[0], brokenID)

	blocks, err = f.repo.ListForDay(ctx, day, day.AddDate(0, 0, 1), &f.professional)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
	assert.Len(t, f.logger.warnings, 2)
}
