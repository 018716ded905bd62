package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type streamRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStreamRepository(db *DB) repository.StreamRepository {
	return &streamRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const streamWithLotColumns = `
	s.id, s.parking_lot_id, s.stream_source, s.processing_rate, s.is_active, s.in_use_until,
	a.parking_lot_address, c.city_name, co.country_name
`

const streamWithLotJoins = `
	FROM video_stream_sources s
	JOIN parking_lots p ON p.id = s.parking_lot_id
	JOIN addresses a ON a.id = p.address_id
	JOIN cities c ON c.id = a.city_id
	JOIN countries co ON co.id = c.country_id
`

func (r *streamRepository) List(ctx context.Context, activeOnly bool) ([]*domain.StreamWithLot, error) {
	query := `SELECT ` + streamWithLotColumns + streamWithLotJoins
	if activeOnly {
		query += ` WHERE s.is_active`
	}
	query += ` ORDER BY s.id`

	var streams []*domain.StreamWithLot
	if err := r.db.SelectContext(ctx, &streams, query); err != nil {
		r.logger.Error("Failed to list video streams", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return streams, nil
}

func (r *streamRepository) GetByID(ctx context.Context, id int64) (*domain.StreamWithLot, error) {
	query := `SELECT ` + streamWithLotColumns + streamWithLotJoins + ` WHERE s.id = $1`

	var stream domain.StreamWithLot
	err := r.db.GetContext(ctx, &stream, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrStreamNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get video stream", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &stream, nil
}

func (r *streamRepository) Create(ctx context.Context, stream *domain.VideoStreamSource) error {
	query := `
		INSERT INTO video_stream_sources
			(parking_lot_id, stream_source, processing_rate, is_active, in_use_until)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		stream.ParkingLotID, stream.StreamSource, stream.ProcessingRate,
		stream.IsActive, stream.InUseUntil,
	).Scan(&stream.ID)
	if err != nil {
		r.logger.Error("Failed to create video stream", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *streamRepository) Update(ctx context.Context, stream *domain.VideoStreamSource, cascadeRate bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback() //nolint:errcheck

	query := `
		UPDATE video_stream_sources
		SET parking_lot_id = $1, stream_source = $2, processing_rate = $3, is_active = $4
		WHERE id = $5
	`
	res, err := tx.ExecContext(ctx, query,
		stream.ParkingLotID, stream.StreamSource, stream.ProcessingRate,
		stream.IsActive, stream.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update video stream", zap.Int64("id", stream.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errors.ErrStreamNotFound
	}

	if cascadeRate {
		// One parking lot keeps one processing rate across its streams.
		_, err = tx.ExecContext(ctx,
			`UPDATE video_stream_sources SET processing_rate = $1 WHERE parking_lot_id = $2 AND id <> $3`,
			stream.ProcessingRate, stream.ParkingLotID, stream.ID,
		)
		if err != nil {
			r.logger.Error("Failed to cascade processing rate",
				zap.Int64("parking_lot_id", stream.ParkingLotID), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit stream update", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *streamRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM video_stream_sources WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete video stream", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errors.ErrStreamNotFound
	}

	return nil
}

func (r *streamRepository) ActiveRateForLot(ctx context.Context, lotID, excludeID int64) (int, bool, error) {
	var rate int
	err := r.db.GetContext(ctx, &rate, `
		SELECT processing_rate
		FROM video_stream_sources
		WHERE parking_lot_id = $1 AND is_active AND id <> $2
		ORDER BY id
		LIMIT 1
	`, lotID, excludeID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		r.logger.Error("Failed to resolve active processing rate",
			zap.Int64("parking_lot_id", lotID), zap.Error(err))
		return 0, false, errors.ErrDatabaseError
	}

	return rate, true, nil
}

// AcquireLease is a single conditional bulk update: only rows from the
// captured id set that are still free at write time get the new expiry.
// A plain "blind write by id list" would re-lease rows grabbed by a
// concurrent caller between our read and this write; the guard on the
// current in_use_until closes that race.
func (r *streamRepository) AcquireLease(ctx context.Context, ids []int64, leaseUntil, now time.Time) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		UPDATE video_stream_sources
		SET in_use_until = $1
		WHERE id = ANY($2)
		  AND (in_use_until IS NULL OR in_use_until <= $3)
		RETURNING id
	`

	rows, err := r.db.QueryContext(ctx, query, leaseUntil, pq.Array(ids), now)
	if err != nil {
		r.logger.Error("Failed to acquire stream leases", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var leased []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			r.logger.Error("Failed to scan leased stream id", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		leased = append(leased, id)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to read leased stream ids", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return leased, nil
}
