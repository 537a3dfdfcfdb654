package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a booking record held by the backend.
type Booking struct {
	ID           string          `json:"id"`
	ServiceID    string          `json:"serviceId"`
	ServiceName  string          `json:"serviceName,omitempty"`
	CustomerID   string          `json:"customerId"`
	ProviderID   string          `json:"providerId"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Time         string          `json:"time"` // HH:MM
	Requirements *string         `json:"requirements,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Status       BookingStatus   `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// BookingResult is the local record of a wizard run that reached
// confirmation. Reference is the placeholder id generated by the simulated
// payment; BackendID is set only when the booking was also submitted.
type BookingResult struct {
	BaseSimple
	Reference    string    `db:"reference"`
	FlowID       string    `db:"flow_id"`
	UserID       string    `db:"user_id"`
	ServiceID    string    `db:"service_id"`
	BookingDate  time.Time `db:"booking_date"`
	BookingTime  string    `db:"booking_time"`
	Requirements *string   `db:"requirements"`
	Notes        *string   `db:"notes"`
	BackendID    *string   `db:"backend_id"`
	ConfirmedAt  time.Time `db:"confirmed_at"`
}
