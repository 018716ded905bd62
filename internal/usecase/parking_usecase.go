package usecase

import (
	"context"
	"fmt"

	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// ParkingUseCase - операции над парковками
type ParkingUseCase struct {
	parkingRepo repository.ParkingRepository
	logger      *zap.Logger
}

func NewParkingUseCase(parkingRepo repository.ParkingRepository, logger *zap.Logger) *ParkingUseCase {
	return &ParkingUseCase{
		parkingRepo: parkingRepo,
		logger:      logger,
	}
}

// CreateLot validates and stores a new parking lot. Geolocation must be a
// complete in-range pair, otherwise creation fails before any write.
func (uc *ParkingUseCase) CreateLot(ctx context.Context, req dto.CreateParkingLotRequest) (*dto.ParkingLotView, error) {
	exists, err := uc.parkingRepo.AddressExists(ctx, req.AddressID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrAddressNotFound.
			WithMessage(fmt.Sprintf("No address found for the provided ID %d", req.AddressID)).
			WithDetails(map[string]interface{}{"address_id": req.AddressID})
	}

	// Defaults mirror the data model: public and free unless stated.
	isPrivate, isFree := domain.AnswerNo, domain.AnswerYes
	if req.IsPrivate != nil {
		isPrivate = domain.Answer(*req.IsPrivate)
	}
	if req.IsFree != nil {
		isFree = domain.Answer(*req.IsFree)
	}

	lot, err := domain.NewParkingLot(
		req.AddressID,
		req.TotalSpots,
		req.SpotsForDisabled,
		isPrivate,
		isFree,
		*req.Latitude,
		*req.Longitude,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.parkingRepo.CreateLot(ctx, lot); err != nil {
		uc.logger.Error("Failed to create parking lot", zap.Error(err))
		return nil, err
	}

	view := dto.NewParkingLotView(lot)
	return &view, nil
}

// GetLot возвращает парковку по ID
func (uc *ParkingUseCase) GetLot(ctx context.Context, id int64) (*dto.ParkingLotView, error) {
	lot, err := uc.parkingRepo.GetLotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dto.NewParkingLotView(lot)
	return &view, nil
}

// ListLots возвращает все парковки
func (uc *ParkingUseCase) ListLots(ctx context.Context) ([]dto.ParkingLotView, error) {
	lots, err := uc.parkingRepo.ListLots(ctx)
	if err != nil {
		uc.logger.Error("Failed to list parking lots", zap.Error(err))
		return nil, err
	}

	views := make([]dto.ParkingLotView, 0, len(lots))
	for _, lot := range lots {
		views = append(views, dto.NewParkingLotView(lot))
	}
	return views, nil
}

// DeleteLot deletes a lot; its streams and occupancy history go with it,
// hourly summaries included (the lot itself is gone).
func (uc *ParkingUseCase) DeleteLot(ctx context.Context, id int64) error {
	if _, err := uc.parkingRepo.GetLotByID(ctx, id); err != nil {
		return err
	}
	return uc.parkingRepo.DeleteLot(ctx, id)
}
