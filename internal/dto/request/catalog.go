package request

type CatalogRequest struct {
	PaginatedRequest
	Search     string `json:"search" validate:"max=100"`
	CategoryID string `json:"category_id" validate:"max=64"`
	PriceRange string `json:"price_range" validate:"omitempty,oneof=under-100 100-300 over-300"`
	Sort       string `json:"sort" validate:"omitempty,oneof=newest price-low price-high duration"`
}
