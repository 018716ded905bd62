package domain

import (
	"math"
	"time"
)

// Occupancy - сырой замер занятости, присланный воркером.
// Timestamp выставляется базой при создании и не изменяется.
type Occupancy struct {
	ID            int64     `json:"id" db:"id"`
	ParkingLotID  int64     `json:"parking_lot_id" db:"parking_lot_id"`
	OccupiedSpots int       `json:"occupied_spots" db:"occupied_spots"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
}

// HourlyOccupancySummary - почасовая сводка занятости парковки.
// На тройку (parking_lot_id, date, hour) существует не больше одной записи.
type HourlyOccupancySummary struct {
	ID               int64     `json:"id" db:"id"`
	ParkingLotID     int64     `json:"parking_lot_id" db:"parking_lot_id"`
	Date             time.Time `json:"date" db:"date"`
	Hour             int       `json:"hour" db:"hour"`
	AvgOccupiedSpots int       `json:"avg_occupied_spots" db:"avg_occupied_spots"`
}

// OccupancyBucket - группа сырых замеров одной парковки за один час
type OccupancyBucket struct {
	ParkingLotID     int64     `db:"parking_lot_id"`
	Date             time.Time `db:"date"`
	Hour             int       `db:"hour"`
	AvgOccupiedSpots float64   `db:"avg_occupied_spots"`
}

// Summary converts the bucket into its durable summary row. The mean is
// rounded half to even, same as the rounding the detection workers expect.
func (b OccupancyBucket) Summary() HourlyOccupancySummary {
	return HourlyOccupancySummary{
		ParkingLotID:     b.ParkingLotID,
		Date:             b.Date,
		Hour:             b.Hour,
		AvgOccupiedSpots: int(math.RoundToEven(b.AvgOccupiedSpots)),
	}
}

// AggregationReport - счётчики одного запуска агрегации, для логов и метрик
type AggregationReport struct {
	SummariesInserted int64 `json:"summaries_inserted"`
	RowsDeleted       int64 `json:"rows_deleted"`
	RowsRetained      int   `json:"rows_retained"`
}
