package complete_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	commissionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/commission"
	professionalRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/professional"
	"github.com/m04kA/SMC-SalonService/internal/integrations/events"
	"github.com/m04kA/SMC-SalonService/internal/service/commission"
)

// publishTimeout ограничение на публикацию события после коммита
const publishTimeout = 5 * time.Second

// UseCase use case завершения записи с фиксацией комиссии
type UseCase struct {
	appointmentRepo  AppointmentRepository
	professionalRepo ProfessionalRepository
	ruleRepo         RuleRepository
	entryRepo        EntryRepository
	fees             FeeScheduleProvider
	publisher        EventPublisher
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	professionalRepo ProfessionalRepository,
	ruleRepo RuleRepository,
	entryRepo EntryRepository,
	fees FeeScheduleProvider,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		ruleRepo:         ruleRepo,
		entryRepo:        entryRepo,
		fees:             fees,
		publisher:        publisher,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute завершает запись: расчет комиссии, смена статуса и запись движения в одной транзакции.
// Событие публикуется после коммита, ошибка публикации не откатывает завершение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: appointment=%s, payment=%s, installments=%d",
		req.AppointmentID, req.PaymentMethod, req.Installments)

	// 1. Валидация входных данных
	payment, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CompleteAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Расписание сборов (кэшируется, читается вне транзакции)
	fees, err := uc.fees.Current(ctx)
	if err != nil {
		uc.logger.Error("CompleteAppointment: failed to load fee schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load fee schedule: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	var result *Response
	var entry *domain.CommissionEntry

	// 3. Все изменения в БД - в одной транзакции, запись блокируется (FOR UPDATE)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CompleteAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CompleteAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !appointment.CanBeCompleted() {
			uc.logger.Warn("CompleteAppointment: appointment id=%s has status=%s", appointment.ID, appointment.Status)
			return ErrNotConfirmed
		}
		if len(appointment.Services) == 0 {
			uc.logger.Warn("CompleteAppointment: appointment id=%s has no services", appointment.ID)
			return ErrNoServices
		}

		professional, err := uc.professionalRepo.GetByID(txCtx, appointment.ProfessionalID)
		if err != nil {
			if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
				uc.logger.Warn("CompleteAppointment: professional id=%s not found", appointment.ProfessionalID)
				return ErrProfessionalNotFound
			}
			uc.logger.Error("CompleteAppointment: failed to get professional id=%s: %v", appointment.ProfessionalID, err)
			return fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}

		rules, err := uc.ruleRepo.GetByProfessional(txCtx, professional.ID)
		if err != nil {
			uc.logger.Error("CompleteAppointment: failed to get rules for professional id=%s: %v", professional.ID, err)
			return fmt.Errorf("%w: failed to get commission rules: %v", ErrInternal, err)
		}

		// 3.1. Расчет комиссии
		calc := commission.Calculate(appointment.Services, professional.CommissionPercentDefault, rules, payment, fees)

		// 3.2. Смена статуса
		if err := uc.appointmentRepo.Complete(txCtx, appointment.ID, payment, now); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				return ErrNotConfirmed
			}
			uc.logger.Error("CompleteAppointment: failed to complete appointment id=%s: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to complete appointment: %v", ErrInternal, err)
		}

		// 3.3. Движение комиссии
		entry, err = uc.entryRepo.Create(txCtx, domain.NewCommissionEntry(appointment, payment, calc))
		if err != nil {
			if errors.Is(err, commissionRepo.ErrEntryAlreadyExists) {
				uc.logger.Warn("CompleteAppointment: commission for appointment id=%s already recorded", appointment.ID)
				return ErrAlreadyCompleted
			}
			uc.logger.Error("CompleteAppointment: failed to record commission for appointment id=%s: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to record commission: %v", ErrInternal, err)
		}

		result = &Response{
			AppointmentID:  appointment.ID,
			ProfessionalID: professional.ID,
			Status:         domain.AppointmentStatusCompleted,
			Payment:        payment,
			CompletedAt:    now,
			ServicesTotal:  appointment.TotalCharged(),
			Commission:     calc,
			EntryID:        entry.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. После коммита: событие и метрики
	// Транзакция уже закоммичена: отмена запроса клиентом не должна терять событие
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.NewAppointmentCompleted(entry, now)
	if err := uc.publisher.PublishAppointmentCompleted(pubCtx, event); err != nil {
		uc.logger.Warn("CompleteAppointment: failed to publish event for appointment id=%s: %v", result.AppointmentID, err)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveCommission("completion")
		uc.metrics.ObserveCompletion(string(payment.Method), result.Commission.NetCommission.InexactFloat64())
	}

	uc.logger.Info("CompleteAppointment: appointment id=%s completed, entry id=%d, gross=%s, net=%s",
		result.AppointmentID, result.EntryID,
		result.Commission.GrossCommission.StringFixed(2), result.Commission.NetCommission.StringFixed(2))
	return result, nil
}
