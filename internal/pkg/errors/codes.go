package errors

import "net/http"

var (
	ErrParkingLotNotFound = New(
		"PARKING_LOT_NOT_FOUND",
		"Parking lot not found",
		http.StatusBadRequest,
	)

	ErrStreamNotFound = New(
		"STREAM_NOT_FOUND",
		"Video stream source not found",
		http.StatusNotFound,
	)

	ErrOccupancyNotFound = New(
		"OCCUPANCY_NOT_FOUND",
		"Occupancy record not found",
		http.StatusNotFound,
	)

	ErrAddressNotFound = New(
		"ADDRESS_NOT_FOUND",
		"Address not found",
		http.StatusBadRequest,
	)

	ErrInvalidLeaseExpiry = New(
		"INVALID_LEASE_EXPIRY",
		"Invalid lease expiry timestamp",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidAnswer = New(
		"INVALID_ANSWER",
		"Answer fields accept only 0 (No) or 1 (Yes)",
		http.StatusBadRequest,
	)

	ErrInvalidProcessingRate = New(
		"INVALID_PROCESSING_RATE",
		"Invalid processing rate value",
		http.StatusBadRequest,
	)

	ErrRateRequiresParkingLot = New(
		"RATE_REQUIRES_PARKING_LOT",
		"`parking_lot_id` field must be provided along with the `processing_rate` one",
		http.StatusBadRequest,
	)

	ErrProcessingRateConflict = New(
		"PROCESSING_RATE_CONFLICT",
		"Processing rate conflicts with an existing active stream",
		http.StatusConflict,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid client credentials",
		http.StatusUnauthorized,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
