package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"servicehub/internal/catalog"
	"servicehub/internal/data/entity"
	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

type DashboardService interface {
	// Admin
	ListUsers(ctx context.Context, session *entity.Session, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error)
	ApproveUser(ctx context.Context, session *entity.Session, userID string) error
	RejectUser(ctx context.Context, session *entity.Session, userID string, req *request.RejectUserRequest) error

	// Bookings, scoped by the caller's role
	ListBookings(ctx context.Context, session *entity.Session, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, session *entity.Session, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type dashboardService struct {
	api BackendClient
	log *zap.Logger
}

func NewDashboardService(api BackendClient, log *zap.Logger) DashboardService {
	return &dashboardService{
		api: api,
		log: log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) ListUsers(ctx context.Context, session *entity.Session, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	users, err := s.api.ListUsers(ctx, session.Token)
	if err != nil {
		s.log.Error("Failed to fetch users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	filtered := make([]entity.User, 0, len(users))
	for _, u := range users {
		if req.Status != "" && string(u.Status) != req.Status {
			continue
		}
		if req.Role != "" && string(u.Role) != req.Role {
			continue
		}
		if search != "" && !userMatches(u, search) {
			continue
		}
		filtered = append(filtered, u)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	page, total := catalog.Paginate(filtered, req.Page, req.Limit())
	data := make([]response.UserResponse, len(page))
	for i, u := range page {
		data[i] = response.UserToResponse(u)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *dashboardService) ApproveUser(ctx context.Context, session *entity.Session, userID string) error {
	if !session.IsAdmin() {
		return ErrForbidden
	}

	if err := s.api.ApproveUser(ctx, session.Token, userID); err != nil {
		s.log.Error("Failed to approve user", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("approve user: %w", err)
	}

	s.log.Info("User approved", zap.String("user_id", userID), zap.String("admin_id", session.UserID))
	return nil
}

func (s *dashboardService) RejectUser(ctx context.Context, session *entity.Session, userID string, req *request.RejectUserRequest) error {
	if !session.IsAdmin() {
		return ErrForbidden
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	if err := s.api.RejectUser(ctx, session.Token, userID, strings.TrimSpace(req.Reason)); err != nil {
		s.log.Error("Failed to reject user", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("reject user: %w", err)
	}

	s.log.Info("User rejected", zap.String("user_id", userID), zap.String("admin_id", session.UserID))
	return nil
}

func (s *dashboardService) ListBookings(ctx context.Context, session *entity.Session, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	bookings, err := s.api.ListBookings(ctx, session.Token)
	if err != nil {
		s.log.Error("Failed to fetch bookings", zap.String("user_id", session.UserID), zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	visible := make([]entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !canSee(session, b) {
			continue
		}
		if req.Status != "" && string(b.Status) != req.Status {
			continue
		}
		visible = append(visible, b)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})

	page, total := catalog.Paginate(visible, req.Page, req.Limit())
	data := make([]response.BookingResponse, len(page))
	for i, b := range page {
		data[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *dashboardService) UpdateBookingStatus(ctx context.Context, session *entity.Session, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}
	if session.Role != entity.RoleProvider && !session.IsAdmin() {
		return nil, ErrForbidden
	}

	bookings, err := s.api.ListBookings(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	var current *entity.Booking
	for i := range bookings {
		if bookings[i].ID == bookingID {
			current = &bookings[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}
	if !canSee(session, *current) {
		return nil, ErrForbidden
	}

	updated, err := s.api.UpdateBookingStatus(ctx, session.Token, bookingID, entity.BookingStatus(req.Status))
	if err != nil {
		s.log.Error("Failed to update booking status",
			zap.String("booking_id", bookingID),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(updated.Status)),
		zap.String("by", session.UserID),
	)

	resp := response.BookingToResponse(*updated)
	return &resp, nil
}

func canSee(session *entity.Session, b entity.Booking) bool {
	switch session.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleProvider:
		return b.ProviderID == session.UserID
	default:
		return b.CustomerID == session.UserID
	}
}

func userMatches(u entity.User, q string) bool {
	if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
		return true
	}
	return u.BusinessName != nil && strings.Contains(strings.ToLower(*u.BusinessName), q)
}
