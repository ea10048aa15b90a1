package professional

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий профессионалов (только чтение, профили ведутся в другом сервисе)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профессионалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профессионала по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "commission_percent_default", "is_active").
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Professional
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.CommissionPercentDefault,
		&p.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan professional: %v", ErrScanRow, err)
	}

	return &p, nil
}
