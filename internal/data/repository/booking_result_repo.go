package repository

import (
	"context"
	"errors"
	"fmt"

	"servicehub/internal/data/entity"
	"servicehub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingResultRepository interface {
	Create(ctx context.Context, result *entity.BookingResult) error
	FindByReference(ctx context.Context, reference string) (*entity.BookingResult, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.BookingResult, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	SetBackendID(ctx context.Context, id uuid.UUID, backendID string) error
}

type bookingResultRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingResultRepository(db database.PgxIface, log *zap.Logger) BookingResultRepository {
	return &bookingResultRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_result")),
	}
}

const bookingResultColumns = `id, reference, flow_id, user_id, service_id, booking_date, booking_time,
		       requirements, notes, backend_id, confirmed_at, created_at`

func (r *bookingResultRepository) Create(ctx context.Context, result *entity.BookingResult) error {
	query := `
		INSERT INTO booking_results (id, reference, flow_id, user_id, service_id, booking_date, booking_time,
		                             requirements, notes, backend_id, confirmed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		result.ID,
		result.Reference,
		result.FlowID,
		result.UserID,
		result.ServiceID,
		result.BookingDate,
		result.BookingTime,
		result.Requirements,
		result.Notes,
		result.BackendID,
		result.ConfirmedAt,
		result.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking result",
			zap.Error(err),
			zap.String("reference", result.Reference),
			zap.String("user_id", result.UserID),
		)
		return fmt.Errorf("create booking result %s: %w", result.Reference, err)
	}

	return nil
}

func (r *bookingResultRepository) FindByReference(ctx context.Context, reference string) (*entity.BookingResult, error) {
	query := `SELECT ` + bookingResultColumns + ` FROM booking_results WHERE reference = $1`

	result, err := scanBookingResult(r.db.QueryRow(ctx, query, reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking result by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking result %s: %w", reference, err)
	}

	return result, nil
}

func (r *bookingResultRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.BookingResult, error) {
	query := `
		SELECT ` + bookingResultColumns + `
		FROM booking_results
		WHERE user_id = $1
		ORDER BY confirmed_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find booking results by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find booking results by user ID %s: %w", userID, err)
	}
	defer rows.Close()

	var results []*entity.BookingResult
	for rows.Next() {
		result, err := scanBookingResult(rows)
		if err != nil {
			r.log.Error("Failed to scan booking result row", zap.Error(err))
			return nil, fmt.Errorf("scan booking result row: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking results: %w", err)
	}

	return results, nil
}

func (r *bookingResultRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM booking_results WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count booking results by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return 0, fmt.Errorf("count booking results by user ID %s: %w", userID, err)
	}

	return count, nil
}

func (r *bookingResultRepository) SetBackendID(ctx context.Context, id uuid.UUID, backendID string) error {
	query := `UPDATE booking_results SET backend_id = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, backendID)
	if err != nil {
		r.log.Error("Failed to set backend ID on booking result",
			zap.Error(err),
			zap.String("booking_result_id", id.String()),
		)
		return fmt.Errorf("set backend ID on booking result %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking result %s not found", id.String())
	}

	return nil
}

func scanBookingResult(row pgx.Row) (*entity.BookingResult, error) {
	var result entity.BookingResult
	err := row.Scan(
		&result.ID,
		&result.Reference,
		&result.FlowID,
		&result.UserID,
		&result.ServiceID,
		&result.BookingDate,
		&result.BookingTime,
		&result.Requirements,
		&result.Notes,
		&result.BackendID,
		&result.ConfirmedAt,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
