package wire

import (
	"fmt"
	"net/http"

	"servicehub/internal/adaptor"
	"servicehub/internal/data/repository"
	"servicehub/internal/usecase"
	"servicehub/pkg/middleware"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the router and the services that own background work.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Close stops background work started by Wiring.
func (a *App) Close() {
	a.Service.Close()
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, api usecase.BackendClient, config *utils.Config, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, api, config, logger)
	if err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(middleware.CORSOptions{AllowedOrigins: config.HTTP.AllowedOrigins}))
	r.Use(middleware.RateLimit(config.HTTP.RateLimitPerMinute, logger))

	wireCatalog(r, handler.Catalog)
	wireBookingFlow(r, handler.BookingFlow, config, logger)
	wireDashboard(r, handler.Dashboard, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
