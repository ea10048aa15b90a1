package commission

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	commissionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/commission"
	professionalRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/professional"
	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// Источники расчета для метрик
const (
	sourcePreview     = "preview"
	sourceAppointment = "appointment"
	sourceRecorded    = "recorded"
)

// Service сервис расчета и учета комиссий
type Service struct {
	appointmentRepo  AppointmentRepository
	professionalRepo ProfessionalRepository
	ruleRepo         RuleRepository
	entryRepo        EntryRepository
	fees             FeeScheduleProvider
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewService создает новый экземпляр сервиса комиссий
// metrics может быть nil
func NewService(
	appointmentRepo AppointmentRepository,
	professionalRepo ProfessionalRepository,
	ruleRepo RuleRepository,
	entryRepo EntryRepository,
	fees FeeScheduleProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		ruleRepo:         ruleRepo,
		entryRepo:        entryRepo,
		fees:             fees,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Preview рассчитывает комиссию по переданным услугам без сохранения
func (s *Service) Preview(ctx context.Context, req *models.PreviewRequest) (*models.CommissionResponse, error) {
	s.logger.Info("Preview: services=%d, payment=%s, installments=%d", len(req.Services), req.PaymentMethod, req.Installments)

	payment, err := domain.NewPaymentSelection(req.PaymentMethod, req.Installments)
	if err != nil {
		s.logger.Warn("Preview: invalid payment: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
	}

	services, err := models.ToDomainServices(req.Services)
	if err != nil {
		s.logger.Warn("Preview: invalid services: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ProfessionalID == nil && req.DefaultPercent == nil {
		s.logger.Warn("Preview: neither professionalId nor defaultPercent given")
		return nil, fmt.Errorf("%w: defaultPercent or professionalId is required", ErrInvalidInput)
	}

	defaultPercent := decimal.Zero
	var rules []domain.CommissionRule

	if req.ProfessionalID != nil {
		professional, err := s.getProfessional(ctx, "Preview", *req.ProfessionalID)
		if err != nil {
			return nil, err
		}
		defaultPercent = professional.CommissionPercentDefault

		if req.Rules == nil {
			rules, err = s.getRules(ctx, "Preview", professional.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	if req.DefaultPercent != nil {
		if req.DefaultPercent.IsNegative() || req.DefaultPercent.GreaterThan(domain.Percent100) {
			s.logger.Warn("Preview: defaultPercent=%s out of range", req.DefaultPercent.String())
			return nil, fmt.Errorf("%w: defaultPercent must be between 0 and 100", ErrInvalidInput)
		}
		defaultPercent = *req.DefaultPercent
	}

	if req.Rules != nil {
		rules, err = models.ToDomainRules(ptr.Deref(req.ProfessionalID, ""), req.Rules)
		if err != nil {
			s.logger.Warn("Preview: invalid rules: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
	}

	var fees domain.FeeSchedule
	if req.FeeSchedule != nil {
		fees, err = req.FeeSchedule.ToDomain()
		if err != nil {
			s.logger.Warn("Preview: invalid fee schedule: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	} else {
		fees, err = s.currentFees(ctx, "Preview")
		if err != nil {
			return nil, err
		}
	}

	result := Calculate(services, defaultPercent, rules, payment, fees)
	s.observe(sourcePreview)

	resp := models.FromDomainResult(result, payment)
	resp.ProfessionalID = req.ProfessionalID

	s.logger.Info("Preview: gross=%s, net=%s", result.GrossCommission.StringFixed(2), result.NetCommission.StringFixed(2))
	return resp, nil
}

// GetAppointmentCommission комиссия по записи.
// Для завершенной записи без способа оплаты в запросе возвращается зафиксированное движение,
// иначе комиссия пересчитывается по текущим правилам и сборам
func (s *Service) GetAppointmentCommission(ctx context.Context, req *models.AppointmentCommissionRequest) (*models.CommissionResponse, error) {
	s.logger.Info("GetAppointmentCommission: appointment id=%s", req.AppointmentID)

	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetAppointmentCommission: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetAppointmentCommission: repository error for appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: GetAppointmentCommission - repository error: %v", ErrInternal, err)
	}

	if appointment.IsCancelled() {
		s.logger.Warn("GetAppointmentCommission: appointment id=%s is cancelled", req.AppointmentID)
		return nil, ErrAppointmentCancelled
	}

	if req.PaymentMethod == nil && appointment.Status == domain.AppointmentStatusCompleted {
		resp, err := s.recordedCommission(ctx, appointment.ID)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}

	payment, err := s.resolvePayment(req, appointment)
	if err != nil {
		s.logger.Warn("GetAppointmentCommission: invalid payment for appointment id=%s: %v", req.AppointmentID, err)
		return nil, err
	}

	professional, err := s.getProfessional(ctx, "GetAppointmentCommission", appointment.ProfessionalID)
	if err != nil {
		return nil, err
	}

	rules, err := s.getRules(ctx, "GetAppointmentCommission", professional.ID)
	if err != nil {
		return nil, err
	}

	fees, err := s.currentFees(ctx, "GetAppointmentCommission")
	if err != nil {
		return nil, err
	}

	result := Calculate(appointment.Services, professional.CommissionPercentDefault, rules, payment, fees)
	s.observe(sourceAppointment)

	resp := models.FromDomainResult(result, payment)
	resp.AppointmentID = ptr.Ptr(appointment.ID)
	resp.ProfessionalID = ptr.Ptr(professional.ID)

	s.logger.Info("GetAppointmentCommission: appointment id=%s gross=%s net=%s",
		appointment.ID, result.GrossCommission.StringFixed(2), result.NetCommission.StringFixed(2))
	return resp, nil
}

// GetRules возвращает процент по умолчанию и правила профессионала
func (s *Service) GetRules(ctx context.Context, professionalID string) (*models.RulesResponse, error) {
	s.logger.Info("GetRules: professional id=%s", professionalID)

	professional, err := s.getProfessional(ctx, "GetRules", professionalID)
	if err != nil {
		return nil, err
	}

	rules, err := s.getRules(ctx, "GetRules", professionalID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetRules: fetched %d rules for professional id=%s", len(rules), professionalID)
	return models.FromDomainRules(professional, rules), nil
}

// ReplaceRules заменяет все правила профессионала одной транзакцией
func (s *Service) ReplaceRules(ctx context.Context, professionalID string, req *models.ReplaceRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("ReplaceRules: professional id=%s, rules=%d", professionalID, len(req.Rules))

	rules, err := models.ToDomainRules(professionalID, req.Rules)
	if err != nil {
		s.logger.Warn("ReplaceRules: invalid rules for professional id=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	professional, err := s.getProfessional(ctx, "ReplaceRules", professionalID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.ruleRepo.ReplaceForProfessional(txCtx, professionalID, rules)
	})
	if err != nil {
		s.logger.Error("ReplaceRules: failed to replace rules for professional id=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ReplaceRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceRules: saved %d rules for professional id=%s", len(rules), professionalID)
	return models.FromDomainRules(professional, rules), nil
}

// GetReport сводка зафиксированных комиссий профессионала за период
func (s *Service) GetReport(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error) {
	s.logger.Info("GetReport: professional id=%s", req.ProfessionalID)

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("GetReport: invalid period %s..%s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	if _, err := s.getProfessional(ctx, "GetReport", req.ProfessionalID); err != nil {
		return nil, err
	}

	filter := domain.CommissionEntriesFilter{
		ProfessionalID: req.ProfessionalID,
		From:           req.From,
	}
	if req.To != nil {
		filter.To = ptr.Ptr(domain.StartOfDay(*req.To).AddDate(0, 0, 1))
	}

	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetReport: repository error for professional id=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: GetReport - repository error: %v", ErrInternal, err)
	}

	report := domain.NewCommissionReport(req.ProfessionalID, entries)

	s.logger.Info("GetReport: %d entries, net=%s for professional id=%s",
		len(entries), report.NetTotal.StringFixed(2), req.ProfessionalID)
	return models.FromDomainReport(report, req.From, req.To), nil
}

// recordedCommission ответ по зафиксированному движению; nil, если движения нет
func (s *Service) recordedCommission(ctx context.Context, appointmentID string) (*models.CommissionResponse, error) {
	entry, err := s.entryRepo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, commissionRepo.ErrEntryNotFound) {
			s.logger.Warn("GetAppointmentCommission: no recorded entry for completed appointment id=%s, recalculating", appointmentID)
			return nil, nil
		}
		s.logger.Error("GetAppointmentCommission: entry repository error for appointment id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetAppointmentCommission - entry repository error: %v", ErrInternal, err)
	}
	s.observe(sourceRecorded)

	resp := models.FromDomainEntry(entry)
	s.logger.Info("GetAppointmentCommission: appointment id=%s recorded entry id=%d net=%s",
		appointmentID, entry.ID, entry.NetCommission.StringFixed(2))
	return resp, nil
}

func (s *Service) resolvePayment(req *models.AppointmentCommissionRequest, appointment *domain.Appointment) (domain.PaymentSelection, error) {
	if req.PaymentMethod != nil {
		payment, err := domain.NewPaymentSelection(*req.PaymentMethod, ptr.Deref(req.Installments, 0))
		if err != nil {
			return domain.PaymentSelection{}, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
		}
		return payment, nil
	}

	if payment, ok := appointment.PaymentSelection(); ok {
		return payment, nil
	}

	return domain.PaymentSelection{}, fmt.Errorf("%w: paymentMethod is required for appointments not yet completed", ErrInvalidPayment)
}

func (s *Service) getProfessional(ctx context.Context, op, id string) (*domain.Professional, error) {
	professional, err := s.professionalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			s.logger.Warn("%s: professional id=%s not found", op, id)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("%s: repository error for professional id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - professional repository error: %v", ErrInternal, op, err)
	}
	return professional, nil
}

func (s *Service) getRules(ctx context.Context, op, professionalID string) ([]domain.CommissionRule, error) {
	rules, err := s.ruleRepo.GetByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("%s: rule repository error for professional id=%s: %v", op, professionalID, err)
		return nil, fmt.Errorf("%w: %s - rule repository error: %v", ErrInternal, op, err)
	}
	return rules, nil
}

func (s *Service) currentFees(ctx context.Context, op string) (domain.FeeSchedule, error) {
	fees, err := s.fees.Current(ctx)
	if err != nil {
		s.logger.Error("%s: failed to load fee schedule: %v", op, err)
		return domain.FeeSchedule{}, fmt.Errorf("%w: %s - fee schedule error: %v", ErrInternal, op, err)
	}
	return fees, nil
}

func (s *Service) observe(source string) {
	if s.metrics != nil {
		s.metrics.ObserveCommission(source)
	}
}
