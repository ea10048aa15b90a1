package feeschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	feeCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/feeschedule"
	feeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/feeschedule"
	"github.com/m04kA/SMC-SalonService/internal/service/feeschedule/models"
)

const cacheName = "fee_schedule"

// Service сервис расписания сборов салона
type Service struct {
	repo    Repository
	cache   Cache
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса
// cache и metrics могут быть nil
func NewService(repo Repository, cache Cache, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// Current возвращает действующее расписание: кэш -> БД -> расписание без сборов
// Ошибки кэша не прерывают запрос
func (s *Service) Current(ctx context.Context) (domain.FeeSchedule, error) {
	if s.cache != nil {
		fees, err := s.cache.Get(ctx)
		if err == nil {
			s.observe(true)
			return *fees, nil
		}
		if !errors.Is(err, feeCache.ErrCacheMiss) {
			s.logger.Warn("Current: cache read failed: %v", err)
		}
		s.observe(false)
	}

	fees, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, feeRepo.ErrFeeScheduleNotFound) {
			s.logger.Error("Current: repository error: %v", err)
			return domain.FeeSchedule{}, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Current: fee schedule not configured, using defaults")
		defaults := domain.DefaultFeeSchedule()
		fees = &defaults
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, fees); err != nil {
			s.logger.Warn("Current: cache write failed: %v", err)
		}
	}

	return *fees, nil
}

// Get возвращает расписание для API
func (s *Service) Get(ctx context.Context) (*models.FeeScheduleResponse, error) {
	s.logger.Info("Get: fetching fee schedule")

	fees, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomain(fees), nil
}

// Update заменяет расписание и сбрасывает кэш
func (s *Service) Update(ctx context.Context, req *models.UpdateRequest) (*models.FeeScheduleResponse, error) {
	s.logger.Info("Update: card fees=%d, admin fee=%s", len(req.CardFeesByInstallment), req.AdminFeePercent.String())

	fees := req.ToDomain()
	if err := fees.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.repo.Upsert(ctx, fees)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Update: cache invalidate failed: %v", err)
		}
	}

	s.logger.Info("Update: fee schedule saved at %s", saved.UpdatedAt.Format(time.RFC3339))
	return models.FromDomain(*saved), nil
}

func (s *Service) observe(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCache(cacheName, hit)
	}
}
