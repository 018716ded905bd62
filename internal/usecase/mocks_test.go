package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/livemap-service/internal/domain"
)

type mockStreamRepo struct {
	mock.Mock
}

func (m *mockStreamRepo) List(ctx context.Context, activeOnly bool) ([]*domain.StreamWithLot, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StreamWithLot), args.Error(1)
}

func (m *mockStreamRepo) GetByID(ctx context.Context, id int64) (*domain.StreamWithLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreamWithLot), args.Error(1)
}

func (m *mockStreamRepo) Create(ctx context.Context, stream *domain.VideoStreamSource) error {
	args := m.Called(ctx, stream)
	return args.Error(0)
}

func (m *mockStreamRepo) Update(ctx context.Context, stream *domain.VideoStreamSource, cascadeRate bool) error {
	args := m.Called(ctx, stream, cascadeRate)
	return args.Error(0)
}

func (m *mockStreamRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStreamRepo) ActiveRateForLot(ctx context.Context, lotID, excludeID int64) (int, bool, error) {
	args := m.Called(ctx, lotID, excludeID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *mockStreamRepo) AcquireLease(ctx context.Context, ids []int64, leaseUntil, now time.Time) ([]int64, error) {
	args := m.Called(ctx, ids, leaseUntil, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockParkingRepo struct {
	mock.Mock
}

func (m *mockParkingRepo) CreateLot(ctx context.Context, lot *domain.ParkingLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *mockParkingRepo) GetLotByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingLot), args.Error(1)
}

func (m *mockParkingRepo) ListLots(ctx context.Context) ([]*domain.ParkingLot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParkingLot), args.Error(1)
}

func (m *mockParkingRepo) DeleteLot(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockParkingRepo) LotExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockParkingRepo) AddressExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockOccupancyRepo struct {
	mock.Mock
}

func (m *mockOccupancyRepo) Create(ctx context.Context, occupancy *domain.Occupancy) error {
	args := m.Called(ctx, occupancy)
	return args.Error(0)
}

func (m *mockOccupancyRepo) GetByID(ctx context.Context, id int64) (*domain.Occupancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Occupancy), args.Error(1)
}

func (m *mockOccupancyRepo) List(ctx context.Context, limit, offset int) ([]*domain.Occupancy, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Occupancy), args.Int(1), args.Error(2)
}

func (m *mockOccupancyRepo) AggregateHourly(ctx context.Context) ([]domain.OccupancyBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OccupancyBucket), args.Error(1)
}

func (m *mockOccupancyRepo) LatestPerLot(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockOccupancyRepo) ApplyAggregation(ctx context.Context, summaries []domain.HourlyOccupancySummary, retain []int64) (int64, int64, error) {
	args := m.Called(ctx, summaries, retain)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *mockOccupancyRepo) SummariesForLot(ctx context.Context, lotID int64) ([]domain.HourlyOccupancySummary, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HourlyOccupancySummary), args.Error(1)
}

type mockCacheRepo struct {
	mock.Mock
}

func (m *mockCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCacheRepo) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}
