package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/usecase/dto"
)

func TestGroupStreams_FirstOccurrenceOrder(t *testing.T) {
	views := []dto.StreamView{
		{ID: 1, ParkingLotID: 1, ParkingLotAddress: "A", StreamSource: "rtsp://1", ProcessingRate: 30},
		{ID: 2, ParkingLotID: 1, ParkingLotAddress: "A", StreamSource: "rtsp://2", ProcessingRate: 30},
		{ID: 3, ParkingLotID: 2, ParkingLotAddress: "B", StreamSource: "rtsp://3", ProcessingRate: 60},
	}

	groups := dto.GroupStreams(views)
	require.Len(t, groups, 2)

	assert.Equal(t, int64(1), groups[0].ParkingLotID)
	assert.Equal(t, "A", groups[0].ParkingLotAddress)
	assert.Equal(t, 30, groups[0].ProcessingRate)
	require.Len(t, groups[0].Streams, 2)
	assert.Equal(t, int64(1), groups[0].Streams[0].ID)
	assert.Equal(t, int64(2), groups[0].Streams[1].ID)

	assert.Equal(t, int64(2), groups[1].ParkingLotID)
	require.Len(t, groups[1].Streams, 1)
	assert.Equal(t, int64(3), groups[1].Streams[0].ID)
}

func TestGroupStreams_InterleavedLots(t *testing.T) {
	views := []dto.StreamView{
		{ID: 1, ParkingLotID: 7},
		{ID: 2, ParkingLotID: 9},
		{ID: 3, ParkingLotID: 7},
		{ID: 4, ParkingLotID: 9},
		{ID: 5, ParkingLotID: 7},
	}

	groups := dto.GroupStreams(views)
	require.Len(t, groups, 2)

	// Groups come out in first occurrence order even when rows interleave,
	// and no stream is lost or duplicated.
	assert.Equal(t, int64(7), groups[0].ParkingLotID)
	assert.Equal(t, int64(9), groups[1].ParkingLotID)

	total := 0
	for _, g := range groups {
		total += len(g.Streams)
	}
	assert.Equal(t, len(views), total)
}

func TestGroupStreams_Empty(t *testing.T) {
	assert.Empty(t, dto.GroupStreams(nil))
	assert.Empty(t, dto.GroupStreams([]dto.StreamView{}))
}

func TestNewStreamView_RendersFullAddress(t *testing.T) {
	until := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	view := dto.NewStreamView(&domain.StreamWithLot{
		VideoStreamSource: domain.VideoStreamSource{
			ID:             5,
			ParkingLotID:   3,
			StreamSource:   "rtsp://cam",
			ProcessingRate: 10,
			IsActive:       true,
			InUseUntil:     &until,
		},
		ParkingLotAddress: "Nevsky 10",
		CityName:          "Saint Petersburg",
		CountryName:       "Russia",
	})

	assert.Equal(t, "Nevsky 10, Saint Petersburg, Russia", view.ParkingLotAddress)
	assert.Equal(t, int64(5), view.ID)
	require.NotNil(t, view.InUseUntil)
	assert.True(t, until.Equal(*view.InUseUntil))
}
