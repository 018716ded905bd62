package repository

import (
	"context"
	"time"

	"github.com/livemap-service/internal/domain"
)

// StreamRepository определяет методы для работы с источниками видеопотоков
type StreamRepository interface {
	// List возвращает потоки вместе с адресами парковок, ORDER BY id
	List(ctx context.Context, activeOnly bool) ([]*domain.StreamWithLot, error)

	// GetByID возвращает поток по ID
	GetByID(ctx context.Context, id int64) (*domain.StreamWithLot, error)

	// Create сохраняет новый поток и выставляет его ID
	Create(ctx context.Context, stream *domain.VideoStreamSource) error

	// Update обновляет поток. При cascadeRate новая частота обработки
	// в той же транзакции применяется ко всем потокам той же парковки.
	Update(ctx context.Context, stream *domain.VideoStreamSource, cascadeRate bool) error

	// Delete удаляет поток
	Delete(ctx context.Context, id int64) error

	// ActiveRateForLot возвращает processing_rate активных потоков парковки,
	// исключая поток excludeID (0 - не исключать). Второй результат false,
	// если активных потоков нет.
	ActiveRateForLot(ctx context.Context, lotID, excludeID int64) (int, bool, error)

	// AcquireLease атомарно арендует потоки из набора ids до leaseUntil.
	// Обновляются только строки, всё ещё свободные на момент записи
	// (in_use_until IS NULL или < now): поток, занятый конкурентным вызовом
	// между чтением и записью, не перезаписывается. Возвращает ID реально
	// арендованных строк.
	AcquireLease(ctx context.Context, ids []int64, leaseUntil, now time.Time) ([]int64, error)
}
