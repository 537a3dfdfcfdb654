package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicehub/internal/data/entity"
	"servicehub/internal/dto/request"

	"go.uber.org/zap"
)

var (
	admin    = &entity.Session{UserID: "admin-1", Role: entity.RoleAdmin, Token: "admin-tok"}
	provider = &entity.Session{UserID: "prov-1", Role: entity.RoleProvider, Token: "prov-tok"}
)

func page(n, per int) request.PaginatedRequest {
	return request.PaginatedRequest{Page: n, PerPage: per}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	s := NewDashboardService(&fakeBackend{}, zap.NewNop())

	_, err := s.ListUsers(context.Background(), provider, &request.UserListRequest{PaginatedRequest: page(1, 10)})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestListUsersFilters(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	shop := "Sparkle Co"
	api := &fakeBackend{users: []entity.User{
		{ID: "u1", Name: "Ann", Role: entity.RoleProvider, Status: entity.UserStatusPending, BusinessName: &shop, CreatedAt: base},
		{ID: "u2", Name: "Bob", Role: entity.RoleProvider, Status: entity.UserStatusPending, CreatedAt: base.Add(time.Hour)},
		{ID: "u3", Name: "Cid", Role: entity.RoleCustomer, Status: entity.UserStatusPending, CreatedAt: base},
		{ID: "u4", Name: "Dee", Role: entity.RoleProvider, Status: entity.UserStatusApproved, CreatedAt: base},
	}}
	s := NewDashboardService(api, zap.NewNop())

	resp, err := s.ListUsers(context.Background(), admin, &request.UserListRequest{
		PaginatedRequest: page(1, 10),
		Status:           "pending",
		Role:             "provider",
	})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].ID != "u2" || resp.Data[1].ID != "u1" {
		t.Fatalf("data = %+v", resp.Data)
	}

	resp, _ = s.ListUsers(context.Background(), admin, &request.UserListRequest{
		PaginatedRequest: page(1, 10),
		Search:           "sparkle",
	})
	if len(resp.Data) != 1 || resp.Data[0].ID != "u1" {
		t.Fatalf("search data = %+v", resp.Data)
	}
}

func TestRejectUserForwardsTrimmedReason(t *testing.T) {
	api := &fakeBackend{}
	s := NewDashboardService(api, zap.NewNop())

	if err := s.RejectUser(context.Background(), admin, "u1", &request.RejectUserRequest{Reason: "  missing licence "}); err != nil {
		t.Fatalf("RejectUser() error = %v", err)
	}
	if api.rejected["u1"] != "missing licence" {
		t.Fatalf("reason = %q", api.rejected["u1"])
	}

	if err := s.ApproveUser(context.Background(), provider, "u1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ApproveUser() by provider error = %v", err)
	}
}

func bookingFixtures() *fakeBackend {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &fakeBackend{bookings: []entity.Booking{
		{ID: "b1", CustomerID: "user-1", ProviderID: "prov-1", Status: entity.BookingStatusPending, CreatedAt: base},
		{ID: "b2", CustomerID: "user-2", ProviderID: "prov-1", Status: entity.BookingStatusConfirmed, CreatedAt: base.Add(time.Hour)},
		{ID: "b3", CustomerID: "user-1", ProviderID: "prov-2", Status: entity.BookingStatusPending, CreatedAt: base.Add(2 * time.Hour)},
	}}
}

func TestListBookingsScopedByRole(t *testing.T) {
	s := NewDashboardService(bookingFixtures(), zap.NewNop())

	tests := []struct {
		name    string
		session *entity.Session
		status  string
		want    []string
	}{
		{name: "customer", session: customer, want: []string{"b3", "b1"}},
		{name: "provider", session: provider, want: []string{"b2", "b1"}},
		{name: "admin", session: admin, want: []string{"b3", "b2", "b1"}},
		{name: "admin pending", session: admin, status: "pending", want: []string{"b3", "b1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.ListBookings(context.Background(), tt.session, &request.BookingListRequest{
				PaginatedRequest: page(1, 10),
				Status:           tt.status,
			})
			if err != nil {
				t.Fatalf("ListBookings() error = %v", err)
			}
			if len(resp.Data) != len(tt.want) {
				t.Fatalf("got %d bookings, want %v", len(resp.Data), tt.want)
			}
			for i, id := range tt.want {
				if resp.Data[i].ID != id {
					t.Fatalf("booking %d = %s, want %s", i, resp.Data[i].ID, id)
				}
			}
		})
	}
}

func TestUpdateBookingStatusOwnership(t *testing.T) {
	s := NewDashboardService(bookingFixtures(), zap.NewNop())
	ctx := context.Background()
	confirm := &request.UpdateBookingStatusRequest{Status: "confirmed"}

	resp, err := s.UpdateBookingStatus(ctx, provider, "b1", confirm)
	if err != nil {
		t.Fatalf("UpdateBookingStatus(own) error = %v", err)
	}
	if resp.Status != entity.BookingStatusConfirmed {
		t.Fatalf("status = %s", resp.Status)
	}

	if _, err := s.UpdateBookingStatus(ctx, provider, "b3", confirm); !errors.Is(err, ErrForbidden) {
		t.Fatalf("UpdateBookingStatus(other provider) error = %v", err)
	}
	if _, err := s.UpdateBookingStatus(ctx, customer, "b1", confirm); !errors.Is(err, ErrForbidden) {
		t.Fatalf("UpdateBookingStatus(customer) error = %v", err)
	}
	if _, err := s.UpdateBookingStatus(ctx, admin, "missing", confirm); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("UpdateBookingStatus(missing) error = %v", err)
	}
	if _, err := s.UpdateBookingStatus(ctx, admin, "b1", &request.UpdateBookingStatusRequest{Status: "lost"}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("UpdateBookingStatus(bad status) error = %v", err)
	}
}
