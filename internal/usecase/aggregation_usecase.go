package usecase

import (
	"context"

	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/metrics"
	"go.uber.org/zap"
)

// AggregationUseCase - периодическая агрегация замеров занятости.
// Сжимает сырые замеры в почасовые сводки и удаляет всё, кроме самого
// свежего замера каждой парковки.
type AggregationUseCase struct {
	occupancyRepo repository.OccupancyRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
}

func NewAggregationUseCase(
	occupancyRepo repository.OccupancyRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *AggregationUseCase {
	return &AggregationUseCase{
		occupancyRepo: occupancyRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

// Run performs one aggregation pass. Buckets are keyed by
// (parking_lot, UTC date, UTC hour); the mean of each bucket is rounded
// half to even. Summary inserts skip triples that already exist, so a
// repeated run over the same raw data inserts nothing, and the inserts plus
// the raw-row deletion happen in one transaction: either the whole pass is
// visible or none of it. A failed run is simply retried on the next tick.
func (uc *AggregationUseCase) Run(ctx context.Context) (*domain.AggregationReport, error) {
	buckets, err := uc.occupancyRepo.AggregateHourly(ctx)
	if err != nil {
		uc.logger.Error("Failed to aggregate occupancy", zap.Error(err))
		metrics.AggregationRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	retain, err := uc.occupancyRepo.LatestPerLot(ctx)
	if err != nil {
		uc.logger.Error("Failed to resolve newest occupancy rows", zap.Error(err))
		metrics.AggregationRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	summaries := make([]domain.HourlyOccupancySummary, 0, len(buckets))
	affectedLots := make(map[int64]struct{}, len(buckets))
	for _, b := range buckets {
		summaries = append(summaries, b.Summary())
		affectedLots[b.ParkingLotID] = struct{}{}
	}

	inserted, deleted, err := uc.occupancyRepo.ApplyAggregation(ctx, summaries, retain)
	if err != nil {
		uc.logger.Error("Aggregation transaction failed", zap.Error(err))
		metrics.AggregationRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	// Cached summary pages are stale after an insert; drop them so the
	// read path repopulates from the database.
	if inserted > 0 && len(affectedLots) > 0 {
		keys := make([]string, 0, len(affectedLots))
		for lotID := range affectedLots {
			keys = append(keys, summaryCacheKey(lotID))
		}
		if err := uc.cacheRepo.Delete(ctx, keys...); err != nil {
			uc.logger.Warn("Failed to invalidate summary cache", zap.Error(err))
		}
	}

	report := &domain.AggregationReport{
		SummariesInserted: inserted,
		RowsDeleted:       deleted,
		RowsRetained:      len(retain),
	}

	uc.logger.Info("Occupancy aggregation finished",
		zap.Int64("summaries_inserted", report.SummariesInserted),
		zap.Int64("rows_deleted", report.RowsDeleted),
		zap.Int("rows_retained", report.RowsRetained))
	metrics.AggregationRuns.WithLabelValues("ok").Inc()
	metrics.SummariesInserted.Add(float64(inserted))
	metrics.OccupancyRowsDeleted.Add(float64(deleted))

	return report, nil
}
