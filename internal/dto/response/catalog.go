package response

import (
	"time"

	"servicehub/internal/catalog"
	"servicehub/internal/data/entity"
)

type ServiceResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	CategoryID      string               `json:"category_id"`
	ProviderID      string               `json:"provider_id"`
	Price           string               `json:"price"`
	Duration        string               `json:"duration"`
	DurationMinutes int                  `json:"duration_minutes"`
	Tags            []string             `json:"tags"`
	Status          entity.ServiceStatus `json:"status"`
	ImageURL        *string              `json:"image_url,omitempty"`
	Rating          *float64             `json:"rating,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

func ServiceToResponse(s entity.Service) ServiceResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		CategoryID:      s.CategoryID,
		ProviderID:      s.ProviderID,
		Price:           s.Price.StringFixed(2),
		Duration:        s.Duration,
		DurationMinutes: catalog.DurationMinutes(s.Duration),
		Tags:            tags,
		Status:          s.Status,
		ImageURL:        s.ImageURL,
		Rating:          s.Rating,
		CreatedAt:       s.CreatedAt,
	}
}

func CategoryToResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
	}
}
