package usecase

import (
	"context"
	"fmt"

	"servicehub/internal/catalog"
	"servicehub/internal/data/entity"
	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListServices(ctx context.Context, req *request.CatalogRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
}

type catalogService struct {
	api BackendClient
	log *zap.Logger
}

func NewCatalogService(api BackendClient, log *zap.Logger) CatalogService {
	return &catalogService{
		api: api,
		log: log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context, req *request.CatalogRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Catalog filter validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	services, err := s.api.ListServices(ctx)
	if err != nil {
		s.log.Error("Failed to fetch services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}

	filtered := catalog.Apply(services, catalog.Filter{
		Search:     req.Search,
		CategoryID: req.CategoryID,
		PriceRange: catalog.PriceRange(req.PriceRange),
		Sort:       catalog.SortBy(req.Sort),
	})

	page, total := catalog.Paginate(filtered, req.Page, req.Limit())

	data := make([]response.ServiceResponse, len(page))
	for i, svc := range page {
		data[i] = response.ServiceToResponse(svc)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	svc, err := findActiveService(ctx, s.api, serviceID)
	if err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(*svc)
	return &resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.log.Error("Failed to fetch categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}

	data := make([]response.CategoryResponse, len(categories))
	for i, c := range categories {
		data[i] = response.CategoryToResponse(c)
	}
	return data, nil
}

// findActiveService looks serviceID up in the backend catalog. Inactive
// services are reported as not found.
func findActiveService(ctx context.Context, api BackendClient, serviceID string) (*entity.Service, error) {
	services, err := api.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	for i := range services {
		if services[i].ID == serviceID && services[i].Status == entity.ServiceStatusActive {
			return &services[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
}
