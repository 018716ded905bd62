package domain

import (
	"time"
)

// ProcessingRate values allowed for a video stream, in seconds.
// The same rate applies to every active stream of one parking lot.
var ProcessingRates = []int{5, 10, 30, 60, 120, 180}

func ValidProcessingRate(rate int) bool {
	for _, r := range ProcessingRates {
		if r == rate {
			return true
		}
	}
	return false
}

// VideoStreamSource - источник видеопотока с камеры парковки.
// Поле in_use_until используется только внутренними сервисами: это
// граница аренды потока воркером обработки видео.
type VideoStreamSource struct {
	ID             int64      `json:"id" db:"id"`
	ParkingLotID   int64      `json:"parking_lot_id" db:"parking_lot_id"`
	StreamSource   string     `json:"stream_source" db:"stream_source"`
	ProcessingRate int        `json:"processing_rate" db:"processing_rate"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	InUseUntil     *time.Time `json:"in_use_until,omitempty" db:"in_use_until"`
}

// Available reports whether the stream can be leased at the given moment.
// A lease expiring exactly at now counts as expired: the comparison for
// "still leased" is strictly in the future.
func (s *VideoStreamSource) Available(now time.Time) bool {
	return s.InUseUntil == nil || s.InUseUntil.Before(now) || s.InUseUntil.Equal(now)
}

// StreamWithLot - поток вместе с данными парковки для read-путей API
type StreamWithLot struct {
	VideoStreamSource
	ParkingLotAddress string `db:"parking_lot_address"`
	CityName          string `db:"city_name"`
	CountryName       string `db:"country_name"`
}

// FullAddress renders the parking lot address line for this stream.
func (s *StreamWithLot) FullAddress() string {
	return RenderAddress(s.ParkingLotAddress, s.CityName, s.CountryName)
}
