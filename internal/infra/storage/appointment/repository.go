package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const (
	tableAppointments = "appointments"
	tableServices     = "appointment_services"

	// Код ошибки PostgreSQL unique_violation
	pgUniqueViolation = "23505"
)

var appointmentColumns = []string{
	"id",
	"professional_id",
	"client_name",
	"start_at",
	"end_at",
	"status",
	"payment_method",
	"installments",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей и их услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает запись вместе с услугами
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	services, err := r.getServices(ctx, executor, []string{appointment.ID})
	if err != nil {
		return nil, err
	}
	appointment.Services = services[appointment.ID]

	return appointment, nil
}

// GetForDay получает записи, пересекающиеся с днем [DayStart, DayEnd)
// Отмененные записи тоже возвращаются, их отбрасывает раскладка календаря
func (r *Repository) GetForDay(ctx context.Context, filter domain.DayAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Lt{"start_at": filter.DayEnd}).
		Where(squirrel.Gt{"end_at": filter.DayStart}).
		OrderBy("start_at ASC", "id ASC")

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	ids := make([]string, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetForDay - scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
		ids = append(ids, appointment.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForDay - iterate rows: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return appointments, nil
	}

	services, err := r.getServices(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		a.Services = services[a.ID]
	}

	return appointments, nil
}

// AddService добавляет услугу в запись
func (r *Repository) AddService(ctx context.Context, appointmentID string, service domain.AppointmentService) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableServices).
		Columns("appointment_id", "service_id", "service_name", "price_charged").
		Values(appointmentID, service.ServiceID, service.ServiceName, service.PriceCharged).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddService - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrServiceAlreadyAdded
		}
		return fmt.Errorf("%w: AddService - execute insert: %v", ErrExecQuery, err)
	}

	return r.touch(ctx, executor, appointmentID)
}

// RemoveService удаляет услугу из записи
func (r *Repository) RemoveService(ctx context.Context, appointmentID, serviceID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableServices).
		Where(squirrel.Eq{"appointment_id": appointmentID, "service_id": serviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveService - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveService - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrServiceNotFound
	}

	return r.touch(ctx, executor, appointmentID)
}

// UpdateStatus меняет статус записи, если текущий статус равен from
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, executor, "UpdateStatus", id, query, args)
}

// Complete переводит подтвержденную запись в completed и фиксирует способ оплаты
func (r *Repository) Complete(ctx context.Context, id string, payment domain.PaymentSelection, completedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("status", domain.AppointmentStatusCompleted).
		Set("payment_method", payment.Method).
		Set("installments", payment.Installments).
		Set("completed_at", completedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.AppointmentStatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execStatusUpdate(ctx, executor, "Complete", id, query, args)
}

// execStatusUpdate выполняет условное обновление и различает "нет записи" и "статус изменился"
func (r *Repository) execStatusUpdate(ctx context.Context, executor DBExecutor, op, id, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected > 0 {
		return nil
	}

	existsQuery, existsArgs, err := psqlbuilder.Select("1").
		From(tableAppointments).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build exists query: %v", ErrBuildQuery, op, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %s - check exists: %v", ErrScanRow, op, err)
	}

	return ErrStatusConflict
}

func (r *Repository) touch(ctx context.Context, executor DBExecutor, id string) error {
	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: touch - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: touch - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// getServices загружает услуги для набора записей одним запросом
func (r *Repository) getServices(ctx context.Context, executor DBExecutor, appointmentIDs []string) (map[string][]domain.AppointmentService, error) {
	query, args, err := psqlbuilder.Select("appointment_id", "service_id", "service_name", "price_charged").
		From(tableServices).
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]domain.AppointmentService, len(appointmentIDs))
	for rows.Next() {
		var appointmentID string
		var service domain.AppointmentService
		if err := rows.Scan(&appointmentID, &service.ServiceID, &service.ServiceName, &service.PriceCharged); err != nil {
			return nil, fmt.Errorf("%w: getServices - scan service: %v", ErrScanRow, err)
		}
		result[appointmentID] = append(result[appointmentID], service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getServices - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var paymentMethod sql.NullString
	var installments sql.NullInt32
	var completedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ProfessionalID,
		&a.ClientName,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&paymentMethod,
		&installments,
		&completedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentMethod.Valid {
		method := domain.PaymentMethod(paymentMethod.String)
		a.PaymentMethod = &method
	}
	if installments.Valid {
		n := int(installments.Int32)
		a.Installments = &n
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}

	return &a, nil
}
