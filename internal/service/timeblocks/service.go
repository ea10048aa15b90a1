package timeblocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	professionalRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/professional"
	timeBlockRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/timeblock"
	"github.com/m04kA/SMC-SalonService/internal/service/timeblocks/models"
)

// Service сервис блоков времени профессионалов
type Service struct {
	blockRepo        TimeBlockRepository
	professionalRepo ProfessionalRepository
	newID            func() string
	logger           Logger
}

// NewService создает новый экземпляр сервиса
func NewService(blockRepo TimeBlockRepository, professionalRepo ProfessionalRepository, logger Logger) *Service {
	return &Service{
		blockRepo:        blockRepo,
		professionalRepo: professionalRepo,
		newID:            uuid.NewString,
		logger:           logger,
	}
}

// Create создает разовый или повторяющийся блок
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.TimeBlockResponse, error) {
	s.logger.Info("Create: professional id=%s, recurring=%t", req.ProfessionalID, req.IsRecurring)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	recurrence, err := buildRecurrence(req)
	if err != nil {
		s.logger.Warn("Create: invalid recurrence: %v", err)
		return nil, err
	}

	if _, err := s.professionalRepo.GetByID(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			s.logger.Warn("Create: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("Create: professional repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - professional repository error: %v", ErrInternal, err)
	}

	block := &domain.TimeBlock{
		ID:             s.newID(),
		ProfessionalID: req.ProfessionalID,
		Title:          strings.TrimSpace(req.Title),
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Recurrence:     recurrence,
	}

	created, err := s.blockRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: time block id=%s created, kind=%s", created.ID, created.Recurrence.Kind())
	resp := models.FromDomain(created)
	return &resp, nil
}

// Delete удаляет блок
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: time block id=%s", id)

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeBlockRepo.ErrTimeBlockNotFound) {
			s.logger.Warn("Delete: time block id=%s not found", id)
			return ErrTimeBlockNotFound
		}
		s.logger.Error("Delete: repository error for time block id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: time block id=%s deleted", id)
	return nil
}

// ListByProfessional список блоков профессионала
func (s *Service) ListByProfessional(ctx context.Context, professionalID string) (*models.TimeBlockListResponse, error) {
	s.logger.Info("ListByProfessional: professional id=%s", professionalID)

	blocks, err := s.blockRepo.ListByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("ListByProfessional: repository error for professional id=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ListByProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByProfessional: fetched %d blocks for professional id=%s", len(blocks), professionalID)
	return models.FromDomainList(blocks), nil
}
