package utils

// ValidateCoordinates reports whether the pair is inside the WGS84 ranges.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
