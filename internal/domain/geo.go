package domain

import "fmt"

// Country - страна в географической иерархии
type Country struct {
	ID          int64  `json:"id" db:"id"`
	CountryName string `json:"country_name" db:"country_name"`
}

func (c Country) String() string {
	return c.CountryName
}

// City - город, принадлежит стране
type City struct {
	ID        int64  `json:"id" db:"id"`
	CountryID int64  `json:"country_id" db:"country_id"`
	CityName  string `json:"city_name" db:"city_name"`
}

// Address - адрес парковки, принадлежит городу
type Address struct {
	ID                int64  `json:"id" db:"id"`
	CityID            int64  `json:"city_id" db:"city_id"`
	ParkingLotAddress string `json:"parking_lot_address" db:"parking_lot_address"`
}

// RenderAddress builds the human-readable address line used in API
// responses: "<street address>, <city>, <country>".
func RenderAddress(address, city, country string) string {
	return fmt.Sprintf("%s, %s, %s", address, city, country)
}
