package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/usecase/dto"
)

func floatPtr(v float64) *float64 { return &v }

func TestCreateLot_DefaultsToPublicAndFree(t *testing.T) {
	parkingRepo := new(mockParkingRepo)
	uc := NewParkingUseCase(parkingRepo, zap.NewNop())

	parkingRepo.On("AddressExists", mock.Anything, int64(1)).Return(true, nil)
	parkingRepo.On("CreateLot", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		lot := args.Get(1).(*domain.ParkingLot)
		assert.Equal(t, domain.AnswerNo, lot.IsPrivate)
		assert.Equal(t, domain.AnswerYes, lot.IsFree)
		lot.ID = 3
	}).Return(nil)

	view, err := uc.CreateLot(context.Background(), dto.CreateParkingLotRequest{
		AddressID:  1,
		TotalSpots: 20,
		Latitude:   floatPtr(55.75),
		Longitude:  floatPtr(37.61),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.ID)
	assert.Equal(t, "No", view.IsPrivate)
	assert.Equal(t, "Yes", view.IsFree)
}

func TestCreateLot_UnknownAddress(t *testing.T) {
	parkingRepo := new(mockParkingRepo)
	uc := NewParkingUseCase(parkingRepo, zap.NewNop())

	parkingRepo.On("AddressExists", mock.Anything, int64(8)).Return(false, nil)

	_, err := uc.CreateLot(context.Background(), dto.CreateParkingLotRequest{
		AddressID:  8,
		TotalSpots: 20,
		Latitude:   floatPtr(55.75),
		Longitude:  floatPtr(37.61),
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, "No address found for the provided ID 8", appErr.Message)
	parkingRepo.AssertNotCalled(t, "CreateLot")
}

func TestCreateLot_OutOfRangeCoordinates(t *testing.T) {
	parkingRepo := new(mockParkingRepo)
	uc := NewParkingUseCase(parkingRepo, zap.NewNop())

	parkingRepo.On("AddressExists", mock.Anything, int64(1)).Return(true, nil)

	_, err := uc.CreateLot(context.Background(), dto.CreateParkingLotRequest{
		AddressID:  1,
		TotalSpots: 20,
		Latitude:   floatPtr(95),
		Longitude:  floatPtr(37.61),
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrInvalidCoordinates.Code, appErr.Code)
	parkingRepo.AssertNotCalled(t, "CreateLot")
}

func TestDeleteLot_NotFound(t *testing.T) {
	parkingRepo := new(mockParkingRepo)
	uc := NewParkingUseCase(parkingRepo, zap.NewNop())

	parkingRepo.On("GetLotByID", mock.Anything, int64(404)).
		Return(nil, errors.ErrParkingLotNotFound)

	err := uc.DeleteLot(context.Background(), 404)
	assert.ErrorIs(t, err, errors.ErrParkingLotNotFound)
	parkingRepo.AssertNotCalled(t, "DeleteLot")
}
