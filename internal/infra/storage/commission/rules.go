package commission

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const tableRules = "commission_rules"

// RuleRepository репозиторий правил комиссии
type RuleRepository struct {
	db DBExecutor
}

// NewRuleRepository создает новый экземпляр репозитория правил
func NewRuleRepository(db DBExecutor) *RuleRepository {
	return &RuleRepository{db: db}
}

// GetByProfessional получает правила профессионала
func (r *RuleRepository) GetByProfessional(ctx context.Context, professionalID string) ([]domain.CommissionRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("professional_id", "service_id", "type", "value").
		From(tableRules).
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("service_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.CommissionRule, 0)
	for rows.Next() {
		var rule domain.CommissionRule
		if err := rows.Scan(&rule.ProfessionalID, &rule.ServiceID, &rule.Type, &rule.Value); err != nil {
			return nil, fmt.Errorf("%w: GetByProfessional - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - iterate rows: %v", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceForProfessional удаляет все правила профессионала и вставляет новые
// Вызывать внутри транзакции
func (r *RuleRepository) ReplaceForProfessional(ctx context.Context, professionalID string, rules []domain.CommissionRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableRules).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(tableRules).
		Columns("professional_id", "service_id", "type", "value")
	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(professionalID, rule.ServiceID, rule.Type, rule.Value)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForProfessional - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
