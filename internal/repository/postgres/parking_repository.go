package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type parkingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewParkingRepository(db *DB) repository.ParkingRepository {
	return &parkingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *parkingRepository) CreateLot(ctx context.Context, lot *domain.ParkingLot) error {
	query := `
		INSERT INTO parking_lots
			(address_id, total_spots, spots_for_disabled, is_private, is_free, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		lot.AddressID, lot.TotalSpots, lot.SpotsForDisabled,
		lot.IsPrivate, lot.IsFree, lot.Latitude, lot.Longitude,
	).Scan(&lot.ID)
	if err != nil {
		r.logger.Error("Failed to create parking lot", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *parkingRepository) GetLotByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	query := `
		SELECT id, address_id, total_spots, spots_for_disabled,
		       is_private, is_free, latitude, longitude
		FROM parking_lots
		WHERE id = $1
	`

	var lot domain.ParkingLot
	err := r.db.GetContext(ctx, &lot, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrParkingLotNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get parking lot", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &lot, nil
}

func (r *parkingRepository) ListLots(ctx context.Context) ([]*domain.ParkingLot, error) {
	query := `
		SELECT id, address_id, total_spots, spots_for_disabled,
		       is_private, is_free, latitude, longitude
		FROM parking_lots
		ORDER BY id
	`

	var lots []*domain.ParkingLot
	if err := r.db.SelectContext(ctx, &lots, query); err != nil {
		r.logger.Error("Failed to list parking lots", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return lots, nil
}

// DeleteLot removes the lot; streams, occupancy rows and summaries are
// removed by the ON DELETE CASCADE constraints.
func (r *parkingRepository) DeleteLot(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parking_lots WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete parking lot", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errors.ErrParkingLotNotFound
	}

	return nil
}

func (r *parkingRepository) LotExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM parking_lots WHERE id = $1)`, id)
	if err != nil {
		r.logger.Error("Failed to check parking lot existence", zap.Int64("id", id), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}

func (r *parkingRepository) AddressExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1)`, id)
	if err != nil {
		r.logger.Error("Failed to check address existence", zap.Int64("id", id), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}
