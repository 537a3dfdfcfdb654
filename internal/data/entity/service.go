package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

// Service is a provider offering as returned by the backend catalog.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
	ProviderID  string          `json:"providerId"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration"` // e.g. "60 minutes"
	Tags        []string        `json:"tags"`
	Status      ServiceStatus   `json:"status"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Rating      *float64        `json:"rating,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}
