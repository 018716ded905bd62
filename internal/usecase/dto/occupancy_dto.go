package dto

import (
	"time"

	"github.com/livemap-service/internal/domain"
)

// CreateOccupancyRequest - тело POST /occupancy/.
// Timestamp выставляется сервером и от клиента не принимается.
type CreateOccupancyRequest struct {
	ParkingLotID  int64 `json:"parking_lot_id" validate:"required"`
	OccupiedSpots int   `json:"occupied_spots" validate:"min=0"`
}

// OccupancyView - сериализованный замер занятости
type OccupancyView struct {
	ID            int64     `json:"id"`
	ParkingLotID  int64     `json:"parking_lot_id"`
	OccupiedSpots int       `json:"occupied_spots"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewOccupancyView(o *domain.Occupancy) OccupancyView {
	return OccupancyView{
		ID:            o.ID,
		ParkingLotID:  o.ParkingLotID,
		OccupiedSpots: o.OccupiedSpots,
		Timestamp:     o.Timestamp,
	}
}

// SummaryView - почасовая сводка занятости в ответах API
type SummaryView struct {
	ID               int64  `json:"id"`
	ParkingLotID     int64  `json:"parking_lot_id"`
	Date             string `json:"date"`
	Hour             int    `json:"hour"`
	AvgOccupiedSpots int    `json:"avg_occupied_spots"`
}

func NewSummaryView(s domain.HourlyOccupancySummary) SummaryView {
	return SummaryView{
		ID:               s.ID,
		ParkingLotID:     s.ParkingLotID,
		Date:             s.Date.Format("2006-01-02"),
		Hour:             s.Hour,
		AvgOccupiedSpots: s.AvgOccupiedSpots,
	}
}
