package appointment

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/infra/storage/storagetest"
)

var errStop = errors.New("stop")

// capturingExecutor запоминает SQL и не выполняет его
type capturingExecutor struct {
	queries []string
}

func (c *capturingExecutor) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	c.queries = append(c.queries, query)
	return nil, errStop
}

func (c *capturingExecutor) QueryContext(_ context.Context, query string, _ ...interface{}) (*sql.Rows, error) {
	c.queries = append(c.queries, query)
	return nil, errStop
}

func (c *capturingExecutor) QueryRowContext(_ context.Context, query string, _ ...interface{}) *sql.Row {
	c.queries = append(c.queries, query)
	return nil
}

// orderByColumns колонки из ORDER BY запроса
func orderByColumns(t *testing.T, query string) []string {
	t.Helper()
	idx := strings.Index(query, "ORDER BY ")
	require.NotEqual(t, -1, idx, "query has no ORDER BY: %s", query)

	columns := make([]string, 0)
	for _, term := range strings.Split(query[idx+len("ORDER BY "):], ",") {
		columns = append(columns, strings.Fields(term)[0])
	}
	return columns
}

func TestGetServices_OrdersByExistingColumn(t *testing.T) {
	exec := &capturingExecutor{}
	r := NewRepository(exec)

	_, err := r.getServices(context.Background(), exec, []string{"a1c2e3f4-5b6a-4c7d-8e9f-0a1b2c3d4e5f"})
	require.ErrorIs(t, err, ErrExecQuery)
	require.Len(t, exec.queries, 1)

	columns, err := storagetest.TableColumns(tableServices)
	require.NoError(t, err)

	for _, column := range orderByColumns(t, exec.queries[0]) {
		assert.Contains(t, columns, column)
	}
	for _, column := range []string{"appointment_id", "service_id", "service_name", "price_charged"} {
		assert.Contains(t, columns, column)
	}
}

func TestGetForDay_OrdersByExistingColumns(t *testing.T) {
	exec := &capturingExecutor{}
	r := NewRepository(exec)

	_, err := r.GetForDay(context.Background(), dayFilter(nil))
	require.ErrorIs(t, err, ErrExecQuery)
	require.Len(t, exec.queries, 1)

	columns, err := storagetest.TableColumns(tableAppointments)
	require.NoError(t, err)

	for _, column := range orderByColumns(t, exec.queries[0]) {
		assert.Contains(t, columns, column)
	}
}

func TestAppointmentColumns_MatchMigration(t *testing.T) {
	columns, err := storagetest.TableColumns(tableAppointments)
	require.NoError(t, err)

	for _, column := range appointmentColumns {
		assert.Contains(t, columns, column)
	}
}
