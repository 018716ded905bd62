package repository

import (
	"context"

	"github.com/livemap-service/internal/domain"
)

// ParkingRepository определяет методы для работы с иерархией
// страна -> город -> адрес -> парковка
type ParkingRepository interface {
	// CreateLot сохраняет новую парковку и выставляет её ID
	CreateLot(ctx context.Context, lot *domain.ParkingLot) error

	// GetLotByID возвращает парковку по ID
	GetLotByID(ctx context.Context, id int64) (*domain.ParkingLot, error)

	// ListLots возвращает все парковки, отсортированные по ID
	ListLots(ctx context.Context) ([]*domain.ParkingLot, error)

	// DeleteLot удаляет парковку; потоки и замеры удаляются каскадно
	DeleteLot(ctx context.Context, id int64) error

	// LotExists проверяет существование парковки
	LotExists(ctx context.Context, id int64) (bool, error)

	// AddressExists проверяет существование адреса
	AddressExists(ctx context.Context, id int64) (bool, error)
}
