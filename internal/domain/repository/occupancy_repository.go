package repository

import (
	"context"

	"github.com/livemap-service/internal/domain"
)

// OccupancyRepository определяет методы для работы с замерами занятости
// и почасовыми сводками
type OccupancyRepository interface {
	// Create сохраняет замер; timestamp выставляет база
	Create(ctx context.Context, occupancy *domain.Occupancy) error

	// GetByID возвращает замер по ID
	GetByID(ctx context.Context, id int64) (*domain.Occupancy, error)

	// List возвращает страницу замеров (ORDER BY id) и общее количество
	List(ctx context.Context, limit, offset int) ([]*domain.Occupancy, int, error)

	// AggregateHourly группирует все замеры по (parking_lot, date, hour)
	// в UTC и считает среднюю занятость каждой группы
	AggregateHourly(ctx context.Context) ([]domain.OccupancyBucket, error)

	// LatestPerLot возвращает ID самого свежего замера каждой парковки
	LatestPerLot(ctx context.Context) ([]int64, error)

	// ApplyAggregation в одной транзакции вставляет сводки (пропуская уже
	// существующие тройки parking_lot/date/hour) и удаляет все замеры,
	// кроме перечисленных в retain. Либо применяется целиком, либо ничего.
	// Возвращает количество вставленных сводок и удалённых замеров.
	ApplyAggregation(ctx context.Context, summaries []domain.HourlyOccupancySummary, retain []int64) (inserted, deleted int64, err error)

	// SummariesForLot возвращает почасовые сводки парковки,
	// ORDER BY date, hour
	SummariesForLot(ctx context.Context, lotID int64) ([]domain.HourlyOccupancySummary, error)
}
