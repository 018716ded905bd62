package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type occupancyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewOccupancyRepository(db *DB) repository.OccupancyRepository {
	return &occupancyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *occupancyRepository) Create(ctx context.Context, occupancy *domain.Occupancy) error {
	// timestamp comes from the database default, never from the caller
	query := `
		INSERT INTO occupancy (parking_lot_id, occupied_spots)
		VALUES ($1, $2)
		RETURNING id, timestamp
	`

	err := r.db.QueryRowContext(ctx, query,
		occupancy.ParkingLotID, occupancy.OccupiedSpots,
	).Scan(&occupancy.ID, &occupancy.Timestamp)
	if err != nil {
		r.logger.Error("Failed to create occupancy record", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *occupancyRepository) GetByID(ctx context.Context, id int64) (*domain.Occupancy, error) {
	var occupancy domain.Occupancy
	err := r.db.GetContext(ctx, &occupancy, `
		SELECT id, parking_lot_id, occupied_spots, timestamp
		FROM occupancy
		WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrOccupancyNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get occupancy record", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &occupancy, nil
}

func (r *occupancyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Occupancy, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM occupancy`); err != nil {
		r.logger.Error("Failed to count occupancy records", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	var records []*domain.Occupancy
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, parking_lot_id, occupied_spots, timestamp
		FROM occupancy
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list occupancy records", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return records, total, nil
}

func (r *occupancyRepository) AggregateHourly(ctx context.Context) ([]domain.OccupancyBucket, error) {
	// Bucketing happens in UTC regardless of the server timezone.
	query := `
		SELECT parking_lot_id,
		       (timestamp AT TIME ZONE 'UTC')::date                      AS date,
		       EXTRACT(HOUR FROM timestamp AT TIME ZONE 'UTC')::int      AS hour,
		       AVG(occupied_spots)::float8                               AS avg_occupied_spots
		FROM occupancy
		GROUP BY parking_lot_id, date, hour
		ORDER BY parking_lot_id, date, hour
	`

	var buckets []domain.OccupancyBucket
	if err := r.db.SelectContext(ctx, &buckets, query); err != nil {
		r.logger.Error("Failed to aggregate occupancy", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return buckets, nil
}

func (r *occupancyRepository) LatestPerLot(ctx context.Context) ([]int64, error) {
	// Ties on timestamp resolve to the highest id, so exactly one row
	// per lot is retained.
	query := `
		SELECT DISTINCT ON (parking_lot_id) id
		FROM occupancy
		ORDER BY parking_lot_id, timestamp DESC, id DESC
	`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		r.logger.Error("Failed to resolve newest occupancy rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return ids, nil
}

// ApplyAggregation runs the whole aggregation write in one transaction:
// summary inserts skip (parking_lot, date, hour) triples that already exist,
// then every raw row outside the retain set is deleted. A failure rolls the
// whole pass back.
func (r *occupancyRepository) ApplyAggregation(
	ctx context.Context,
	summaries []domain.HourlyOccupancySummary,
	retain []int64,
) (int64, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin aggregation transaction", zap.Error(err))
		return 0, 0, errors.ErrDatabaseError
	}
	defer tx.Rollback() //nolint:errcheck

	insertQuery := `
		INSERT INTO hourly_occupancy_summary (parking_lot_id, date, hour, avg_occupied_spots)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (parking_lot_id, date, hour) DO NOTHING
	`

	var inserted int64
	for _, s := range summaries {
		res, err := tx.ExecContext(ctx, insertQuery,
			s.ParkingLotID, s.Date, s.Hour, s.AvgOccupiedSpots)
		if err != nil {
			r.logger.Error("Failed to insert hourly summary",
				zap.Int64("parking_lot_id", s.ParkingLotID), zap.Error(err))
			return 0, 0, errors.ErrDatabaseError
		}
		if affected, err := res.RowsAffected(); err == nil {
			inserted += affected
		}
	}

	if retain == nil {
		retain = []int64{}
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM occupancy WHERE NOT (id = ANY($1))`, pq.Array(retain))
	if err != nil {
		r.logger.Error("Failed to delete aggregated occupancy rows", zap.Error(err))
		return 0, 0, errors.ErrDatabaseError
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		deleted = 0
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit aggregation transaction", zap.Error(err))
		return 0, 0, errors.ErrDatabaseError
	}

	return inserted, deleted, nil
}

func (r *occupancyRepository) SummariesForLot(ctx context.Context, lotID int64) ([]domain.HourlyOccupancySummary, error) {
	var summaries []domain.HourlyOccupancySummary
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT id, parking_lot_id, date, hour, avg_occupied_spots
		FROM hourly_occupancy_summary
		WHERE parking_lot_id = $1
		ORDER BY date, hour
	`, lotID)
	if err != nil {
		r.logger.Error("Failed to load hourly summaries",
			zap.Int64("parking_lot_id", lotID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return summaries, nil
}
