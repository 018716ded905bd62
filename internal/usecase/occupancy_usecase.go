package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

func summaryCacheKey(lotID int64) string {
	return fmt.Sprintf("summaries:lot:%d", lotID)
}

// OccupancyUseCase - приём замеров занятости от воркеров и чтение
// почасовых сводок
type OccupancyUseCase struct {
	occupancyRepo repository.OccupancyRepository
	parkingRepo   repository.ParkingRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
	cacheTTL      time.Duration
}

func NewOccupancyUseCase(
	occupancyRepo repository.OccupancyRepository,
	parkingRepo repository.ParkingRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *OccupancyUseCase {
	return &OccupancyUseCase{
		occupancyRepo: occupancyRepo,
		parkingRepo:   parkingRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

// CreateOccupancy stores a worker-reported sample. The timestamp is assigned
// by the database; whatever the client sends is ignored.
func (uc *OccupancyUseCase) CreateOccupancy(ctx context.Context, req dto.CreateOccupancyRequest) (*dto.OccupancyView, error) {
	exists, err := uc.parkingRepo.LotExists(ctx, req.ParkingLotID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrParkingLotNotFound.
			WithMessage(fmt.Sprintf("No parking lot found for the provided ID %d", req.ParkingLotID)).
			WithDetails(map[string]interface{}{"parking_lot_id": req.ParkingLotID})
	}

	occupancy := &domain.Occupancy{
		ParkingLotID:  req.ParkingLotID,
		OccupiedSpots: req.OccupiedSpots,
	}
	if err := uc.occupancyRepo.Create(ctx, occupancy); err != nil {
		uc.logger.Error("Failed to create occupancy record", zap.Error(err))
		return nil, err
	}

	view := dto.NewOccupancyView(occupancy)
	return &view, nil
}

// GetOccupancy возвращает один замер по ID
func (uc *OccupancyUseCase) GetOccupancy(ctx context.Context, id int64) (*dto.OccupancyView, error) {
	occupancy, err := uc.occupancyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dto.NewOccupancyView(occupancy)
	return &view, nil
}

// ListOccupancy возвращает страницу замеров и общее количество
func (uc *OccupancyUseCase) ListOccupancy(ctx context.Context, limit, offset int) ([]dto.OccupancyView, int, error) {
	records, total, err := uc.occupancyRepo.List(ctx, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list occupancy records", zap.Error(err))
		return nil, 0, err
	}

	views := make([]dto.OccupancyView, 0, len(records))
	for _, o := range records {
		views = append(views, dto.NewOccupancyView(o))
	}
	return views, total, nil
}

// SummariesForLot returns the hourly summaries of one parking lot, served
// from the Redis cache when possible. The aggregator invalidates these keys
// after every run.
func (uc *OccupancyUseCase) SummariesForLot(ctx context.Context, lotID int64) ([]dto.SummaryView, error) {
	exists, err := uc.parkingRepo.LotExists(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrParkingLotNotFound.
			WithMessage(fmt.Sprintf("No parking lot found for the provided ID %d", lotID)).
			WithDetails(map[string]interface{}{"parking_lot_id": lotID})
	}

	key := summaryCacheKey(lotID)
	if cached, err := uc.cacheRepo.Get(ctx, key); err == nil && cached != nil {
		var views []dto.SummaryView
		if err := json.Unmarshal(cached, &views); err == nil {
			return views, nil
		}
		// Corrupt cache entry, fall through to the database.
	}

	summaries, err := uc.occupancyRepo.SummariesForLot(ctx, lotID)
	if err != nil {
		uc.logger.Error("Failed to load summaries", zap.Int64("parking_lot_id", lotID), zap.Error(err))
		return nil, err
	}

	views := make([]dto.SummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, dto.NewSummaryView(s))
	}

	if payload, err := json.Marshal(views); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache summaries", zap.Int64("parking_lot_id", lotID), zap.Error(err))
		}
	}

	return views, nil
}
