package usecase

import (
	"context"
	"errors"

	"servicehub/internal/data/entity"
	"servicehub/internal/data/repository"
	"servicehub/pkg/backend"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrNoActiveFlow     = errors.New("booking flow not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidTimeSlot  = errors.New("invalid time slot")
	ErrInvalidDate      = errors.New("invalid date")
	ErrForbidden        = errors.New("forbidden")
	ErrValidationFailed = errors.New("validation failed")
)

// BackendClient is the part of the external REST API the services call.
// *backend.Client implements it.
type BackendClient interface {
	ListServices(ctx context.Context) ([]entity.Service, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateBooking(ctx context.Context, token string, in backend.CreateBookingInput) (*entity.Booking, error)
	ListBookings(ctx context.Context, token string) ([]entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, token, bookingID string, status entity.BookingStatus) (*entity.Booking, error)
	ListUsers(ctx context.Context, token string) ([]entity.User, error)
	ApproveUser(ctx context.Context, token, userID string) error
	RejectUser(ctx context.Context, token, userID, reason string) error
}

type Service struct {
	BookingFlow BookingFlowService
	Catalog     CatalogService
	Dashboard   DashboardService
}

func NewService(repo *repository.Repository, api BackendClient, config *utils.Config, log *zap.Logger) (*Service, error) {
	bookingFlow, err := NewBookingFlowService(repo.BookingResult, api, config.Booking, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		BookingFlow: bookingFlow,
		Catalog:     NewCatalogService(api, log),
		Dashboard:   NewDashboardService(api, log),
	}, nil
}

// Close stops background work owned by the services.
func (s *Service) Close() {
	s.BookingFlow.Close()
}
