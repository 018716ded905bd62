package dto

import (
	"time"

	"github.com/livemap-service/internal/domain"
)

// StreamView - сериализованный вид потока для ответов API
type StreamView struct {
	ID                int64      `json:"id"`
	ParkingLotID      int64      `json:"parking_lot_id"`
	ParkingLotAddress string     `json:"parking_lot_address"`
	StreamSource      string     `json:"stream_source"`
	ProcessingRate    int        `json:"processing_rate"`
	IsActive          bool       `json:"is_active"`
	InUseUntil        *time.Time `json:"in_use_until,omitempty"`
}

// StreamDetail - per-stream часть сгруппированного ответа
type StreamDetail struct {
	ID           int64      `json:"id"`
	StreamSource string     `json:"stream_source"`
	IsActive     bool       `json:"is_active"`
	InUseUntil   *time.Time `json:"in_use_until,omitempty"`
}

// StreamGroup - потоки одной парковки в сгруппированном ответе
type StreamGroup struct {
	ParkingLotID      int64          `json:"parking_lot_id"`
	ParkingLotAddress string         `json:"parking_lot_address"`
	ProcessingRate    int            `json:"processing_rate"`
	Streams           []StreamDetail `json:"streams"`
}

// CreateStreamRequest - тело POST /video-stream-sources/
type CreateStreamRequest struct {
	ParkingLotID   int64  `json:"parking_lot_id" validate:"required"`
	StreamSource   string `json:"stream_source" validate:"required,url"`
	ProcessingRate int    `json:"processing_rate" validate:"required"`
	IsActive       *bool  `json:"is_active"`
}

// UpdateStreamRequest - тело PATCH /video-stream-sources/:id.
// Все поля опциональны; изменение processing_rate требует parking_lot_id.
type UpdateStreamRequest struct {
	ParkingLotID   *int64  `json:"parking_lot_id"`
	StreamSource   *string `json:"stream_source" validate:"omitempty,url"`
	ProcessingRate *int    `json:"processing_rate"`
	IsActive       *bool   `json:"is_active"`
}

// ListStreamsQuery - параметры GET /video-stream-sources/
type ListStreamsQuery struct {
	ActiveOnly     bool
	MarkInUseUntil string
	Limit          int
	Offset         int
}

// NewStreamView projects a stream row joined with its parking lot.
func NewStreamView(s *domain.StreamWithLot) StreamView {
	return StreamView{
		ID:                s.ID,
		ParkingLotID:      s.ParkingLotID,
		ParkingLotAddress: s.FullAddress(),
		StreamSource:      s.StreamSource,
		ProcessingRate:    s.ProcessingRate,
		IsActive:          s.IsActive,
		InUseUntil:        s.InUseUntil,
	}
}

// GroupStreams groups a flat stream list by parking lot. One parking lot may
// have several CCTV cameras; the output carries one entry per lot, in first
// occurrence order, with the per-stream details attached in input order.
// Duplicate rows referencing an already emitted lot are skipped, so the total
// stream count across groups always equals the input length.
func GroupStreams(views []StreamView) []StreamGroup {
	details := make(map[int64][]StreamDetail, len(views))
	for _, v := range views {
		details[v.ParkingLotID] = append(details[v.ParkingLotID], StreamDetail{
			ID:           v.ID,
			StreamSource: v.StreamSource,
			IsActive:     v.IsActive,
			InUseUntil:   v.InUseUntil,
		})
	}

	groups := make([]StreamGroup, 0, len(details))
	for _, v := range views {
		streams, ok := details[v.ParkingLotID]
		if !ok {
			// Another stream of this lot already emitted the group entry.
			continue
		}
		delete(details, v.ParkingLotID)
		groups = append(groups, StreamGroup{
			ParkingLotID:      v.ParkingLotID,
			ParkingLotAddress: v.ParkingLotAddress,
			ProcessingRate:    v.ProcessingRate,
			Streams:           streams,
		})
	}

	return groups
}
