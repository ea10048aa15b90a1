package timeblock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const tableTimeBlocks = "time_blocks"

var timeBlockColumns = []string{
	"id",
	"professional_id",
	"title",
	"start_at",
	"end_at",
	"is_recurring",
	"recurrence_type",
	"recurrence_days",
	"recurrence_end_date",
	"created_at",
}

// Repository репозиторий блоков времени
type Repository struct {
	db     DBExecutor
	logger Logger
}

// NewRepository создает новый экземпляр репозитория блоков времени
func NewRepository(db DBExecutor, logger Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create сохраняет блок времени (ID генерирует вызывающий)
func (r *Repository) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	isRecurring, recurrenceType, days, until := recurrenceColumns(block.Recurrence)

	query, args, err := psqlbuilder.Insert(tableTimeBlocks).
		Columns(
			"id",
			"professional_id",
			"title",
			"start_at",
			"end_at",
			"is_recurring",
			"recurrence_type",
			"recurrence_days",
			"recurrence_end_date",
		).
		Values(
			block.ID,
			block.ProfessionalID,
			block.Title,
			block.StartAt,
			block.EndAt,
			isRecurring,
			recurrenceType,
			days,
			until,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// Delete удаляет блок времени
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableTimeBlocks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrTimeBlockNotFound
	}

	return nil
}

// ListByProfessional получает все блоки профессионала
func (r *Repository) ListByProfessional(ctx context.Context, professionalID string) ([]*domain.TimeBlock, error) {
	query, args, err := psqlbuilder.Select(timeBlockColumns...).
		From(tableTimeBlocks).
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("is_recurring DESC", "start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByProfessional", query, args)
}

// ListForDay получает блоки-кандидаты для дня [dayStart, dayEnd):
// все действующие повторяющиеся блоки и разовые блоки, пересекающие день.
// Окончательную применимость определяет раскладка календаря
func (r *Repository) ListForDay(ctx context.Context, dayStart, dayEnd time.Time, professionalID *string) ([]*domain.TimeBlock, error) {
	selectBuilder := psqlbuilder.Select(timeBlockColumns...).
		From(tableTimeBlocks).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"is_recurring": true},
				squirrel.Or{
					squirrel.Eq{"recurrence_end_date": nil},
					squirrel.GtOrEq{"recurrence_end_date": dayStart.Format(domain.DateFormat)},
				},
			},
			squirrel.And{
				squirrel.Eq{"is_recurring": false},
				squirrel.Lt{"start_at": dayEnd},
				squirrel.GtOrEq{"end_at": dayStart},
			},
		}).
		OrderBy("start_at ASC", "id ASC")

	if professionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListForDay", query, args)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blocks := make([]*domain.TimeBlock, 0)
	for rows.Next() {
		var b domain.TimeBlock
		var isRecurring bool
		var recurrenceType sql.NullString
		var days []int64
		var until sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.ProfessionalID,
			&b.Title,
			&b.StartAt,
			&b.EndAt,
			&isRecurring,
			&recurrenceType,
			pq.Array(&days),
			&until,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan time block: %v", ErrScanRow, op, err)
		}

		recurrence, err := domain.RecurrenceFromColumns(isRecurring, nullStringPtr(recurrenceType), days, nullTimePtr(until))
		if err != nil {
			// Некорректно сохраненное повторение ни к одному дню не применяется
			r.logger.Warn("%s: skipped time block id=%s with invalid recurrence: %v", op, b.ID, err)
			continue
		}
		b.Recurrence = recurrence

		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return blocks, nil
}

// recurrenceColumns раскладывает вариант повторения по колонкам таблицы
func recurrenceColumns(rec domain.Recurrence) (bool, *string, interface{}, *string) {
	if !rec.IsRecurring() {
		return false, nil, nil, nil
	}

	kind := string(rec.Kind())

	var days interface{}
	if rec.Kind() == domain.RecurrenceWeekly {
		weekdays := rec.Days().Days()
		values := make([]int64, len(weekdays))
		for i, d := range weekdays {
			values[i] = int64(d)
		}
		days = pq.Array(values)
	}

	var until *string
	if rec.Until() != nil {
		s := rec.Until().Format(domain.DateFormat)
		until = &s
	}

	return true, &kind, days, until
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
