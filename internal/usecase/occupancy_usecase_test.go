package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/usecase/dto"
)

func newOccupancyUseCaseForTest(
	occupancyRepo *mockOccupancyRepo,
	parkingRepo *mockParkingRepo,
	cacheRepo *mockCacheRepo,
) *OccupancyUseCase {
	return NewOccupancyUseCase(occupancyRepo, parkingRepo, cacheRepo, zap.NewNop(), time.Minute)
}

func TestCreateOccupancy_UnknownParkingLot(t *testing.T) {
	occupancyRepo := new(mockOccupancyRepo)
	parkingRepo := new(mockParkingRepo)
	uc := newOccupancyUseCaseForTest(occupancyRepo, parkingRepo, new(mockCacheRepo))

	parkingRepo.On("LotExists", mock.Anything, int64(9)).Return(false, nil)

	_, err := uc.CreateOccupancy(context.Background(), dto.CreateOccupancyRequest{
		ParkingLotID:  9,
		OccupiedSpots: 3,
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, "No parking lot found for the provided ID 9", appErr.Message)
	occupancyRepo.AssertNotCalled(t, "Create")
}

func TestCreateOccupancy_TimestampFromRepository(t *testing.T) {
	occupancyRepo := new(mockOccupancyRepo)
	parkingRepo := new(mockParkingRepo)
	uc := newOccupancyUseCaseForTest(occupancyRepo, parkingRepo, new(mockCacheRepo))

	dbTime := time.Date(2026, 8, 27, 16, 30, 0, 0, time.UTC)
	parkingRepo.On("LotExists", mock.Anything, int64(1)).Return(true, nil)
	occupancyRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		rec := args.Get(1).(*domain.Occupancy)
		rec.ID = 77
		rec.Timestamp = dbTime
	}).Return(nil)

	view, err := uc.CreateOccupancy(context.Background(), dto.CreateOccupancyRequest{
		ParkingLotID:  1,
		OccupiedSpots: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), view.ID)
	assert.True(t, dbTime.Equal(view.Timestamp))
}

func TestSummariesForLot_CacheMissPopulatesCache(t *testing.T) {
	occupancyRepo := new(mockOccupancyRepo)
	parkingRepo := new(mockParkingRepo)
	cacheRepo := new(mockCacheRepo)
	uc := newOccupancyUseCaseForTest(occupancyRepo, parkingRepo, cacheRepo)

	parkingRepo.On("LotExists", mock.Anything, int64(2)).Return(true, nil)
	cacheRepo.On("Get", mock.Anything, "summaries:lot:2").Return(nil, nil)
	occupancyRepo.On("SummariesForLot", mock.Anything, int64(2)).
		Return([]domain.HourlyOccupancySummary{
			{ID: 1, ParkingLotID: 2, Date: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), Hour: 10, AvgOccupiedSpots: 15},
		}, nil)
	cacheRepo.On("Set", mock.Anything, "summaries:lot:2", mock.Anything, time.Minute).Return(nil)

	views, err := uc.SummariesForLot(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "2026-08-27", views[0].Date)
	assert.Equal(t, 10, views[0].Hour)
	assert.Equal(t, 15, views[0].AvgOccupiedSpots)
	cacheRepo.AssertExpectations(t)
}

func TestSummariesForLot_CacheHitSkipsRepository(t *testing.T) {
	occupancyRepo := new(mockOccupancyRepo)
	parkingRepo := new(mockParkingRepo)
	cacheRepo := new(mockCacheRepo)
	uc := newOccupancyUseCaseForTest(occupancyRepo, parkingRepo, cacheRepo)

	cached, err := json.Marshal([]dto.SummaryView{
		{ParkingLotID: 2, Date: "2026-08-26", Hour: 9, AvgOccupiedSpots: 4},
	})
	require.NoError(t, err)

	parkingRepo.On("LotExists", mock.Anything, int64(2)).Return(true, nil)
	cacheRepo.On("Get", mock.Anything, "summaries:lot:2").Return(cached, nil)

	views, err := uc.SummariesForLot(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "2026-08-26", views[0].Date)
	occupancyRepo.AssertNotCalled(t, "SummariesForLot")
}

func TestSummariesForLot_UnknownLot(t *testing.T) {
	parkingRepo := new(mockParkingRepo)
	uc := newOccupancyUseCaseForTest(new(mockOccupancyRepo), parkingRepo, new(mockCacheRepo))

	parkingRepo.On("LotExists", mock.Anything, int64(404)).Return(false, nil)

	_, err := uc.SummariesForLot(context.Background(), 404)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrParkingLotNotFound.Code, appErr.Code)
}

func TestListOccupancy(t *testing.T) {
	occupancyRepo := new(mockOccupancyRepo)
	uc := newOccupancyUseCaseForTest(occupancyRepo, new(mockParkingRepo), new(mockCacheRepo))

	occupancyRepo.On("List", mock.Anything, 50, 0).Return([]*domain.Occupancy{
		{ID: 1, ParkingLotID: 1, OccupiedSpots: 5},
		{ID: 2, ParkingLotID: 1, OccupiedSpots: 6},
	}, 12, nil)

	views, total, err := uc.ListOccupancy(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, views, 2)
}
