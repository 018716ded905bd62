package domain

import (
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/pkg/utils"
)

// Answer - бинарный "да/нет" признак парковки. Хранится как целое,
// любое значение кроме 0 и 1 считается нарушением целостности данных.
type Answer int

const (
	AnswerNo  Answer = 0
	AnswerYes Answer = 1
)

func (a Answer) Valid() bool {
	return a == AnswerNo || a == AnswerYes
}

func (a Answer) Label() string {
	if a == AnswerYes {
		return "Yes"
	}
	return "No"
}

// ParkingLot - парковка с геопозицией и вместимостью
type ParkingLot struct {
	ID               int64   `json:"id" db:"id"`
	AddressID        int64   `json:"address_id" db:"address_id"`
	TotalSpots       int     `json:"total_spots" db:"total_spots"`
	SpotsForDisabled *int    `json:"spots_for_disabled,omitempty" db:"spots_for_disabled"`
	IsPrivate        Answer  `json:"is_private" db:"is_private"`
	IsFree           Answer  `json:"is_free" db:"is_free"`
	Latitude         float64 `json:"latitude" db:"latitude"`
	Longitude        float64 `json:"longitude" db:"longitude"`
}

// NewParkingLot validates the input and constructs the entity. Validation
// happens here, before anything touches the store.
func NewParkingLot(
	addressID int64,
	totalSpots int,
	spotsForDisabled *int,
	isPrivate, isFree Answer,
	latitude, longitude float64,
) (*ParkingLot, error) {
	if !utils.ValidateCoordinates(latitude, longitude) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"latitude":  latitude,
			"longitude": longitude,
		})
	}
	if totalSpots < 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"total_spots": "must be a non-negative integer",
		})
	}
	if spotsForDisabled != nil && *spotsForDisabled < 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"spots_for_disabled": "must be a non-negative integer",
		})
	}
	if !isPrivate.Valid() || !isFree.Valid() {
		return nil, errors.ErrInvalidAnswer
	}

	return &ParkingLot{
		AddressID:        addressID,
		TotalSpots:       totalSpots,
		SpotsForDisabled: spotsForDisabled,
		IsPrivate:        isPrivate,
		IsFree:           isFree,
		Latitude:         latitude,
		Longitude:        longitude,
	}, nil
}
