package feeschedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const (
	tableFeeSchedule = "fee_schedule"

	// В таблице одна строка на салон
	singletonID = 1
)

// Repository репозиторий расписания сборов
// card_fees хранится как JSONB {"1": "3.5", "2": "4.2", ...}
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания сборов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущее расписание сборов
func (r *Repository) Get(ctx context.Context) (*domain.FeeSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("card_fees", "admin_fee_percent", "updated_at").
		From(tableFeeSchedule).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	var fees domain.FeeSchedule
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw, &fees.AdminFeePercent, &fees.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeeScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan fee schedule: %v", ErrScanRow, err)
	}

	cardFees, err := decodeCardFees(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - decode card fees: %v", ErrEncoding, err)
	}
	fees.CardFeesByInstallment = cardFees

	return &fees, nil
}

// Upsert создает или полностью заменяет расписание сборов
func (r *Repository) Upsert(ctx context.Context, fees *domain.FeeSchedule) (*domain.FeeSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(fees.CardFeesByInstallment)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - encode card fees: %v", ErrEncoding, err)
	}

	query, args, err := psqlbuilder.Insert(tableFeeSchedule).
		Columns("id", "card_fees", "admin_fee_percent", "updated_at").
		Values(singletonID, string(raw), fees.AdminFeePercent, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET card_fees = EXCLUDED.card_fees, " +
			"admin_fee_percent = EXCLUDED.admin_fee_percent, updated_at = EXCLUDED.updated_at " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&fees.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return fees, nil
}

func decodeCardFees(raw []byte) (map[int]decimal.Decimal, error) {
	fees := make(map[int]decimal.Decimal)
	if len(raw) == 0 {
		return fees, nil
	}
	if err := json.Unmarshal(raw, &fees); err != nil {
		return nil, err
	}
	return fees, nil
}
