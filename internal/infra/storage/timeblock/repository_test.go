package timeblock

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func TestRecurrenceColumns_None(t *testing.T) {
	isRecurring, kind, days, until := recurrenceColumns(domain.NoRecurrence())

	assert.False(t, isRecurring)
	assert.Nil(t, kind)
	assert.Nil(t, days)
	assert.Nil(t, until)
}

func TestRecurrenceColumns_Weekly(t *testing.T) {
	set, err := domain.NewWeekdaySet([]int{5, 1})
	require.NoError(t, err)
	rec, err := domain.WeeklyRecurrence(set, ptr.Ptr(time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	isRecurring, kind, days, until := recurrenceColumns(rec)

	assert.True(t, isRecurring)
	require.NotNil(t, kind)
	assert.Equal(t, "weekly", *kind)
	assert.Equal(t, pq.Array([]int64{1, 5}), days)
	require.NotNil(t, until)
	assert.Equal(t, "2030-12-31", *until)
}

func TestRecurrenceColumns_DailyHasNoDays(t *testing.T) {
	isRecurring, kind, days, until := recurrenceColumns(domain.DailyRecurrence(nil))

	assert.True(t, isRecurring)
	assert.Equal(t, "daily", *kind)
	assert.Nil(t, days)
	assert.Nil(t, until)
}

func TestTimeBlockColumns_MatchMigration(t *testing.T) {
	columns, err := storagetest.TableColumns(tableTimeBlocks)
	require.NoError(t, err)

	for _, column := range timeBlockColumns {
		assert.Contains(t, columns, column)
	}
}
