package backend

import (
	"context"
	"net/http"
	"net/url"

	"servicehub/internal/data/entity"

	"github.com/shopspring/decimal"
)

func (c *Client) ListServices(ctx context.Context) ([]entity.Service, error) {
	var services []entity.Service
	if err := c.doJSON(ctx, http.MethodGet, "/service", "", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := c.doJSON(ctx, http.MethodGet, "/ServiceCategory", "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateBookingInput is the booking request shape accepted by the backend.
type CreateBookingInput struct {
	ServiceID    string          `json:"serviceId"`
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	Requirements *string         `json:"requirements,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Reference    string          `json:"reference"`
}

func (c *Client) CreateBooking(ctx context.Context, token string, in CreateBookingInput) (*entity.Booking, error) {
	var booking entity.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/booking", token, in, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	if err := c.doJSON(ctx, http.MethodGet, "/booking", token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, token, bookingID string, status entity.BookingStatus) (*entity.Booking, error) {
	body := struct {
		Status entity.BookingStatus `json:"status"`
	}{Status: status}

	var booking entity.Booking
	path := "/booking/" + url.PathEscape(bookingID) + "/status"
	if err := c.doJSON(ctx, http.MethodPut, path, token, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	var users []entity.User
	if err := c.doJSON(ctx, http.MethodGet, "/user", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ApproveUser(ctx context.Context, token, userID string) error {
	return c.doJSON(ctx, http.MethodPut, "/user/"+url.PathEscape(userID)+"/approve", token, nil, nil)
}

func (c *Client) RejectUser(ctx context.Context, token, userID, reason string) error {
	var body any
	if reason != "" {
		body = struct {
			Reason string `json:"reason"`
		}{Reason: reason}
	}
	return c.doJSON(ctx, http.MethodPut, "/user/"+url.PathEscape(userID)+"/reject", token, body, nil)
}
