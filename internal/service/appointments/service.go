package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис записей: чтение, правка услуг, отмена
// Завершение записи выполняет use case complete_appointment
type Service struct {
	repo      AppointmentRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(repo AppointmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает запись с услугами
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomain(appointment), nil
}

// AddService добавляет услугу в подтвержденную запись
func (s *Service) AddService(ctx context.Context, appointmentID string, req *models.AddServiceRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("AddService: appointment id=%s, service id=%s", appointmentID, req.ServiceID)

	service, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("AddService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Appointment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.get(txCtx, "AddService", appointmentID)
		if err != nil {
			return err
		}

		if !appointment.CanEditServices() {
			s.logger.Warn("AddService: appointment id=%s has status=%s", appointmentID, appointment.Status)
			return ErrNotEditable
		}
		if appointment.HasService(service.ServiceID) {
			return ErrServiceAlreadyAdded
		}

		if err := s.repo.AddService(txCtx, appointmentID, service); err != nil {
			if errors.Is(err, appointmentRepo.ErrServiceAlreadyAdded) {
				return ErrServiceAlreadyAdded
			}
			s.logger.Error("AddService: repository error for appointment id=%s: %v", appointmentID, err)
			return fmt.Errorf("%w: AddService - repository error: %v", ErrInternal, err)
		}

		appointment.Services = append(appointment.Services, service)
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddService: service id=%s added to appointment id=%s", service.ServiceID, appointmentID)
	return models.FromDomain(result), nil
}

// RemoveService удаляет услугу из подтвержденной записи
func (s *Service) RemoveService(ctx context.Context, appointmentID, serviceID string) (*models.AppointmentResponse, error) {
	s.logger.Info("RemoveService: appointment id=%s, service id=%s", appointmentID, serviceID)

	var result *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.get(txCtx, "RemoveService", appointmentID)
		if err != nil {
			return err
		}

		if !appointment.CanEditServices() {
			s.logger.Warn("RemoveService: appointment id=%s has status=%s", appointmentID, appointment.Status)
			return ErrNotEditable
		}

		if err := s.repo.RemoveService(txCtx, appointmentID, serviceID); err != nil {
			if errors.Is(err, appointmentRepo.ErrServiceNotFound) {
				s.logger.Warn("RemoveService: service id=%s not in appointment id=%s", serviceID, appointmentID)
				return ErrServiceNotFound
			}
			s.logger.Error("RemoveService: repository error for appointment id=%s: %v", appointmentID, err)
			return fmt.Errorf("%w: RemoveService - repository error: %v", ErrInternal, err)
		}

		remaining := make([]domain.AppointmentService, 0, len(appointment.Services))
		for _, svc := range appointment.Services {
			if svc.ServiceID != serviceID {
				remaining = append(remaining, svc)
			}
		}
		appointment.Services = remaining
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RemoveService: service id=%s removed from appointment id=%s", serviceID, appointmentID)
	return models.FromDomain(result), nil
}

// Cancel отменяет подтвержденную запись
func (s *Service) Cancel(ctx context.Context, id string) error {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	appointment, err := s.get(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	err = s.repo.UpdateStatus(ctx, id, domain.AppointmentStatusConfirmed, domain.AppointmentStatusCancelled)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrStatusConflict):
			s.logger.Warn("Cancel: appointment id=%s changed status concurrently", id)
			return ErrCannotCancel
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return ErrAppointmentNotFound
		default:
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: appointment id=%s cancelled", id)
	return nil
}

func (s *Service) get(ctx context.Context, op, id string) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}
