package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/livemap-service/internal/domain"
)

func TestVideoStreamSource_Available(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		inUseUntil *time.Time
		want       bool
	}{
		{"no lease", nil, true},
		{"expired lease", timePtr(now.Add(-time.Minute)), true},
		{"lease expiring exactly now", timePtr(now), true},
		{"active lease", timePtr(now.Add(time.Minute)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.VideoStreamSource{InUseUntil: tt.inUseUntil}
			assert.Equal(t, tt.want, s.Available(now))
		})
	}
}

func TestValidProcessingRate(t *testing.T) {
	for _, rate := range []int{5, 10, 30, 60, 120, 180} {
		assert.True(t, domain.ValidProcessingRate(rate), "rate %d", rate)
	}
	for _, rate := range []int{0, -5, 1, 15, 90, 300} {
		assert.False(t, domain.ValidProcessingRate(rate), "rate %d", rate)
	}
}

func TestStreamWithLot_FullAddress(t *testing.T) {
	s := domain.StreamWithLot{
		ParkingLotAddress: "Tverskaya 1",
		CityName:          "Moscow",
		CountryName:       "Russia",
	}
	assert.Equal(t, "Tverskaya 1, Moscow, Russia", s.FullAddress())
}

func timePtr(t time.Time) *time.Time {
	return &t
}
