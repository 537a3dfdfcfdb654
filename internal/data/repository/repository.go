package repository

import (
	"servicehub/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	BookingResult BookingResultRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		BookingResult: NewBookingResultRepository(db, log),
	}
}
