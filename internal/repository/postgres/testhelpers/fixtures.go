package testhelpers

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// SeedParkingLot inserts a full geo chain (country, city, address) and a
// parking lot on top of it, returning the lot id.
func SeedParkingLot(db *sqlx.DB, country, city, address string, totalSpots int) (int64, error) {
	var countryID int64
	err := db.QueryRow(
		`INSERT INTO countries (country_name) VALUES ($1)
		 ON CONFLICT (country_name) DO UPDATE SET country_name = EXCLUDED.country_name
		 RETURNING id`, country).Scan(&countryID)
	if err != nil {
		return 0, err
	}

	var cityID int64
	err = db.QueryRow(
		`INSERT INTO cities (country_id, city_name) VALUES ($1, $2)
		 ON CONFLICT (country_id, city_name) DO UPDATE SET city_name = EXCLUDED.city_name
		 RETURNING id`, countryID, city).Scan(&cityID)
	if err != nil {
		return 0, err
	}

	var addressID int64
	err = db.QueryRow(
		`INSERT INTO addresses (city_id, parking_lot_address) VALUES ($1, $2) RETURNING id`,
		cityID, address).Scan(&addressID)
	if err != nil {
		return 0, err
	}

	var lotID int64
	err = db.QueryRow(
		`INSERT INTO parking_lots (address_id, total_spots, is_private, is_free, latitude, longitude)
		 VALUES ($1, $2, 0, 1, 55.75, 37.61) RETURNING id`,
		addressID, totalSpots).Scan(&lotID)
	if err != nil {
		return 0, err
	}

	return lotID, nil
}

// SeedStream inserts a video stream source for the given lot.
func SeedStream(db *sqlx.DB, lotID int64, source string, rate int, active bool, inUseUntil *time.Time) (int64, error) {
	var id int64
	err := db.QueryRow(
		`INSERT INTO video_stream_sources (parking_lot_id, stream_source, processing_rate, is_active, in_use_until)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		lotID, source, rate, active, inUseUntil).Scan(&id)
	return id, err
}

// SeedOccupancy inserts an occupancy measurement with an explicit timestamp.
func SeedOccupancy(db *sqlx.DB, lotID int64, occupied int, ts time.Time) (int64, error) {
	var id int64
	err := db.QueryRow(
		`INSERT INTO occupancy (parking_lot_id, occupied_spots, timestamp)
		 VALUES ($1, $2, $3) RETURNING id`,
		lotID, occupied, ts).Scan(&id)
	return id, err
}
