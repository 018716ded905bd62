package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/pkg/metrics"
	"github.com/livemap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// Lease expiry arrives as an ISO 8601 string. Offset-less values are read
// as UTC, the same way the detection workers produce them.
var leaseExpiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseLeaseExpiry validates and parses the mark_in_use_until value.
func ParseLeaseExpiry(raw string) (time.Time, error) {
	for _, layout := range leaseExpiryLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, errors.ErrInvalidLeaseExpiry.WithDetails(map[string]interface{}{
		"mark_in_use_until": "Must be a valid ISO 8601 datetime string",
		"value":             raw,
	})
}

// StreamUseCase - операции над источниками видеопотоков, включая
// выдачу потоков воркерам в аренду
type StreamUseCase struct {
	streamRepo  repository.StreamRepository
	parkingRepo repository.ParkingRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewStreamUseCase(
	streamRepo repository.StreamRepository,
	parkingRepo repository.ParkingRepository,
	logger *zap.Logger,
) *StreamUseCase {
	return &StreamUseCase{
		streamRepo:  streamRepo,
		parkingRepo: parkingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// ListStreams returns the grouped stream list. When MarkInUseUntil is set,
// the page of streams is first run through lease acquisition and only the
// streams actually leased by this call are returned. The second int result
// is the stream count after filtering.
func (uc *StreamUseCase) ListStreams(ctx context.Context, q dto.ListStreamsQuery) ([]dto.StreamGroup, int, error) {
	streams, err := uc.streamRepo.List(ctx, q.ActiveOnly)
	if err != nil {
		uc.logger.Error("Failed to list video streams", zap.Error(err))
		return nil, 0, err
	}

	// Pagination is applied to the flat stream list, before grouping.
	from, to := paginationWindow(len(streams), q.Limit, q.Offset)
	page := streams[from:to]

	if q.MarkInUseUntil != "" {
		page, err = uc.AcquireStreams(ctx, page, q.MarkInUseUntil)
		if err != nil {
			return nil, 0, err
		}
	}

	views := make([]dto.StreamView, 0, len(page))
	for _, s := range page {
		views = append(views, dto.NewStreamView(s))
	}

	return dto.GroupStreams(views), len(page), nil
}

// AcquireStreams leases every available stream of the candidate pool until
// the given expiry. A stream is available when its in_use_until is absent or
// not in the future; a lease expiring right now counts as expired. Streams
// already held by someone else are filtered out of the result, and so are
// streams grabbed by a concurrent caller between the read and the write.
// Returned streams keep their original relative order and carry the new
// expiry.
func (uc *StreamUseCase) AcquireStreams(
	ctx context.Context,
	pool []*domain.StreamWithLot,
	leaseUntilRaw string,
) ([]*domain.StreamWithLot, error) {
	leaseUntil, err := ParseLeaseExpiry(leaseUntilRaw)
	if err != nil {
		metrics.LeaseRequests.WithLabelValues("invalid_expiry").Inc()
		return nil, err
	}

	now := uc.now().UTC()
	requestID := uuid.NewString()

	available := make([]*domain.StreamWithLot, 0, len(pool))
	ids := make([]int64, 0, len(pool))
	for _, s := range pool {
		if s.Available(now) {
			available = append(available, s)
			ids = append(ids, s.ID)
		}
	}

	if len(ids) == 0 {
		metrics.LeaseRequests.WithLabelValues("empty").Inc()
		return []*domain.StreamWithLot{}, nil
	}

	leasedIDs, err := uc.streamRepo.AcquireLease(ctx, ids, leaseUntil, now)
	if err != nil {
		uc.logger.Error("Failed to acquire stream leases",
			zap.String("request_id", requestID),
			zap.Error(err))
		metrics.LeaseRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	leasedSet := make(map[int64]struct{}, len(leasedIDs))
	for _, id := range leasedIDs {
		leasedSet[id] = struct{}{}
	}

	leased := make([]*domain.StreamWithLot, 0, len(leasedIDs))
	for _, s := range available {
		if _, ok := leasedSet[s.ID]; !ok {
			// Lost to a concurrent caller between the read and the write.
			continue
		}
		updated := *s
		expiry := leaseUntil
		updated.InUseUntil = &expiry
		leased = append(leased, &updated)
	}

	uc.logger.Info("Stream leases acquired",
		zap.String("request_id", requestID),
		zap.Int("candidates", len(pool)),
		zap.Int("leased", len(leased)),
		zap.Time("in_use_until", leaseUntil))
	metrics.LeaseRequests.WithLabelValues("ok").Inc()
	metrics.LeasesAcquired.Add(float64(len(leased)))

	return leased, nil
}

// GetStream возвращает один поток по ID
func (uc *StreamUseCase) GetStream(ctx context.Context, id int64) (*dto.StreamView, error) {
	stream, err := uc.streamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dto.NewStreamView(stream)
	return &view, nil
}

// CreateStream validates and stores a new video stream source. All domain
// validation runs before the insert: the parking lot must exist, the rate
// must be one of the allowed values, and it must match the rate of any
// existing active stream of the same lot.
func (uc *StreamUseCase) CreateStream(ctx context.Context, req dto.CreateStreamRequest) (*dto.StreamView, error) {
	if !domain.ValidProcessingRate(req.ProcessingRate) {
		return nil, errors.ErrInvalidProcessingRate.WithDetails(map[string]interface{}{
			"processing_rate": fmt.Sprintf("must be one of %v seconds", domain.ProcessingRates),
		})
	}

	if err := uc.requireParkingLot(ctx, req.ParkingLotID); err != nil {
		return nil, err
	}

	rate, hasActive, err := uc.streamRepo.ActiveRateForLot(ctx, req.ParkingLotID, 0)
	if err != nil {
		return nil, err
	}
	if hasActive && rate != req.ProcessingRate {
		return nil, errors.ErrProcessingRateConflict.WithMessage(fmt.Sprintf(
			"The processing rate for the parking lot %d must be %d seconds",
			req.ParkingLotID, rate,
		))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	stream := &domain.VideoStreamSource{
		ParkingLotID:   req.ParkingLotID,
		StreamSource:   req.StreamSource,
		ProcessingRate: req.ProcessingRate,
		IsActive:       isActive,
	}
	if err := uc.streamRepo.Create(ctx, stream); err != nil {
		uc.logger.Error("Failed to create video stream", zap.Error(err))
		return nil, err
	}

	return uc.GetStream(ctx, stream.ID)
}

// UpdateStream applies a partial update. Changing processing_rate requires
// parking_lot_id in the same request and cascades the new rate to every
// other stream of that lot within one transaction.
func (uc *StreamUseCase) UpdateStream(ctx context.Context, id int64, req dto.UpdateStreamRequest) (*dto.StreamView, error) {
	existing, err := uc.streamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProcessingRate != nil && req.ParkingLotID == nil {
		return nil, errors.ErrRateRequiresParkingLot.WithDetails(map[string]interface{}{
			"parking_lot_id": errors.ErrRateRequiresParkingLot.Message,
		})
	}

	stream := existing.VideoStreamSource
	cascadeRate := false

	if req.ParkingLotID != nil {
		if err := uc.requireParkingLot(ctx, *req.ParkingLotID); err != nil {
			return nil, err
		}
		stream.ParkingLotID = *req.ParkingLotID
	}
	if req.StreamSource != nil {
		stream.StreamSource = *req.StreamSource
	}
	if req.ProcessingRate != nil {
		if !domain.ValidProcessingRate(*req.ProcessingRate) {
			return nil, errors.ErrInvalidProcessingRate.WithDetails(map[string]interface{}{
				"processing_rate": fmt.Sprintf("must be one of %v seconds", domain.ProcessingRates),
			})
		}
		cascadeRate = *req.ProcessingRate != stream.ProcessingRate
		stream.ProcessingRate = *req.ProcessingRate
	}
	if req.IsActive != nil {
		stream.IsActive = *req.IsActive
	}

	if err := uc.streamRepo.Update(ctx, &stream, cascadeRate); err != nil {
		uc.logger.Error("Failed to update video stream", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if cascadeRate {
		uc.logger.Info("Processing rate cascaded to sibling streams",
			zap.Int64("parking_lot_id", stream.ParkingLotID),
			zap.Int("processing_rate", stream.ProcessingRate))
	}

	return uc.GetStream(ctx, id)
}

// DeleteStream удаляет поток
func (uc *StreamUseCase) DeleteStream(ctx context.Context, id int64) error {
	if _, err := uc.streamRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.streamRepo.Delete(ctx, id)
}

func (uc *StreamUseCase) requireParkingLot(ctx context.Context, id int64) error {
	exists, err := uc.parkingRepo.LotExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrParkingLotNotFound.
			WithMessage(fmt.Sprintf("No parking lot found for the provided ID %d", id)).
			WithDetails(map[string]interface{}{"parking_lot_id": id})
	}
	return nil
}

func paginationWindow(total, limit, offset int) (int, int) {
	if limit <= 0 {
		return 0, total
	}
	from := offset
	if from > total {
		from = total
	}
	to := from + limit
	if to > total {
		to = total
	}
	return from, to
}
