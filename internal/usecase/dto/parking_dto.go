package dto

import "github.com/livemap-service/internal/domain"

// CreateParkingLotRequest - тело POST /parking-lots/.
// is_private и is_free принимают только 0 или 1; по умолчанию
// парковка публичная и бесплатная.
type CreateParkingLotRequest struct {
	AddressID        int64    `json:"address_id" validate:"required"`
	TotalSpots       int      `json:"total_spots" validate:"min=0"`
	SpotsForDisabled *int     `json:"spots_for_disabled"`
	IsPrivate        *int     `json:"is_private"`
	IsFree           *int     `json:"is_free"`
	Latitude         *float64 `json:"latitude" validate:"required"`
	Longitude        *float64 `json:"longitude" validate:"required"`
}

// ParkingLotView - сериализованная парковка
type ParkingLotView struct {
	ID               int64   `json:"id"`
	AddressID        int64   `json:"address_id"`
	TotalSpots       int     `json:"total_spots"`
	SpotsForDisabled *int    `json:"spots_for_disabled,omitempty"`
	IsPrivate        string  `json:"is_private"`
	IsFree           string  `json:"is_free"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

func NewParkingLotView(lot *domain.ParkingLot) ParkingLotView {
	return ParkingLotView{
		ID:               lot.ID,
		AddressID:        lot.AddressID,
		TotalSpots:       lot.TotalSpots,
		SpotsForDisabled: lot.SpotsForDisabled,
		IsPrivate:        lot.IsPrivate.Label(),
		IsFree:           lot.IsFree.Label(),
		Latitude:         lot.Latitude,
		Longitude:        lot.Longitude,
	}
}
