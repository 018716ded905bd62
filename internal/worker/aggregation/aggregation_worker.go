package aggregation

import (
	"context"
	"time"

	"github.com/livemap-service/internal/usecase"
	"github.com/livemap-service/internal/worker"
	"go.uber.org/zap"
)

// AggregationWorker запускает агрегацию занятости по фиксированному
// интервалу. Запуски выполняются последовательно в одном цикле: новый
// проход не начнётся, пока предыдущий не зафиксирован, поэтому
// пересекающихся запусков не бывает.
type AggregationWorker struct {
	*worker.BaseWorker
	aggregationUC *usecase.AggregationUseCase
	interval      time.Duration
}

// NewAggregationWorker создает новый AggregationWorker
func NewAggregationWorker(
	aggregationUC *usecase.AggregationUseCase,
	interval time.Duration,
	logger *zap.Logger,
) *AggregationWorker {
	return &AggregationWorker{
		BaseWorker:    worker.NewBaseWorker("occupancy-aggregation", logger),
		aggregationUC: aggregationUC,
		interval:      interval,
	}
}

// Start запускает воркер
func (w *AggregationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AggregationWorker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce executes a single aggregation pass. Failures are logged and left
// for the next tick: the job is idempotent, a retry only fills in gaps.
func (w *AggregationWorker) runOnce(ctx context.Context) {
	started := time.Now()
	report, err := w.aggregationUC.Run(ctx)
	if err != nil {
		w.Logger().Error("Aggregation run failed, will retry on next tick", zap.Error(err))
		return
	}

	w.Logger().Info("Aggregation run completed",
		zap.Duration("took", time.Since(started)),
		zap.Int64("summaries_inserted", report.SummariesInserted),
		zap.Int64("rows_deleted", report.RowsDeleted),
		zap.Int("rows_retained", report.RowsRetained))
}
