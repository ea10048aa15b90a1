package commission

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const (
	tableEntries = "commission_entries"

	// Код ошибки PostgreSQL unique_violation
	pgUniqueViolation = "23505"
)

var entryColumns = []string{
	"id",
	"appointment_id",
	"professional_id",
	"payment_method",
	"installments",
	"services_total",
	"gross_commission",
	"card_fee_percent",
	"card_fee_amount",
	"admin_fee_percent",
	"admin_fee_amount",
	"net_commission",
	"breakdown",
	"created_at",
}

// entryLine строка разбивки в JSONB колонке breakdown
type entryLine struct {
	ServiceID       string          `json:"service_id"`
	ServiceName     string          `json:"service_name"`
	Amount          decimal.Decimal `json:"amount"`
	RuleDescription string          `json:"rule_description"`
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// EntryRepository репозиторий зафиксированных комиссий
type EntryRepository struct {
	db DBExecutor
}

// NewEntryRepository создает новый экземпляр репозитория движений
func NewEntryRepository(db DBExecutor) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create сохраняет комиссию по завершенной записи
// На одну запись допускается одно движение (unique appointment_id)
func (r *EntryRepository) Create(ctx context.Context, entry *domain.CommissionEntry) (*domain.CommissionEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breakdown, err := marshalBreakdown(entry.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal breakdown: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(tableEntries).
		Columns(
			"appointment_id",
			"professional_id",
			"payment_method",
			"installments",
			"services_total",
			"gross_commission",
			"card_fee_percent",
			"card_fee_amount",
			"admin_fee_percent",
			"admin_fee_amount",
			"net_commission",
			"breakdown",
		).
		Values(
			entry.AppointmentID,
			entry.ProfessionalID,
			entry.PaymentMethod,
			entry.Installments,
			entry.ServicesTotal,
			entry.GrossCommission,
			entry.CardFeePercent,
			entry.CardFeeAmount,
			entry.AdminFeePercent,
			entry.AdminFeeAmount,
			entry.NetCommission,
			breakdown,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrEntryAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// GetByAppointment получает зафиксированную комиссию по записи
func (r *EntryRepository) GetByAppointment(ctx context.Context, appointmentID string) (*domain.CommissionEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From(tableEntries).
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: GetByAppointment - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// List получает движения профессионала за период [From, To)
func (r *EntryRepository) List(ctx context.Context, filter domain.CommissionEntriesFilter) ([]*domain.CommissionEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From(tableEntries).
		Where(squirrel.Eq{"professional_id": filter.ProfessionalID}).
		OrderBy("created_at ASC", "id ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.CommissionEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan entry: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return entries, nil
}

func scanEntry(row rowScanner) (*domain.CommissionEntry, error) {
	var (
		e         domain.CommissionEntry
		breakdown []byte
	)
	err := row.Scan(
		&e.ID,
		&e.AppointmentID,
		&e.ProfessionalID,
		&e.PaymentMethod,
		&e.Installments,
		&e.ServicesTotal,
		&e.GrossCommission,
		&e.CardFeePercent,
		&e.CardFeeAmount,
		&e.AdminFeePercent,
		&e.AdminFeeAmount,
		&e.NetCommission,
		&breakdown,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Breakdown, err = unmarshalBreakdown(breakdown)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func marshalBreakdown(lines []domain.CommissionLine) ([]byte, error) {
	rows := make([]entryLine, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, entryLine{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			Amount:          line.Amount,
			RuleDescription: line.RuleDescription,
		})
	}
	return json.Marshal(rows)
}

func unmarshalBreakdown(raw []byte) ([]domain.CommissionLine, error) {
	if len(raw) == 0 {
		return []domain.CommissionLine{}, nil
	}

	var rows []entryLine
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode breakdown: %w", err)
	}

	lines := make([]domain.CommissionLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CommissionLine{
			ServiceID:       row.ServiceID,
			ServiceName:     row.ServiceName,
			Amount:          row.Amount,
			RuleDescription: row.RuleDescription,
		})
	}
	return lines, nil
}
