package wire

import (
	"servicehub/internal/adaptor"
	"servicehub/internal/data/entity"
	"servicehub/pkg/middleware"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDashboard(
	r chi.Router,
	dashboardHandler *adaptor.DashboardHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (any role) ====================
	// GET /api/bookings - Backend bookings visible to the caller
	r.With(middleware.Auth(config.JWT.Secret, log)).Get("/api/bookings", dashboardHandler.ListBookings)

	// ==================== PROVIDER ROUTES ====================
	r.Route("/api/provider/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, entity.RoleProvider, entity.RoleAdmin))

		r.Get("/", dashboardHandler.ListBookings)
		r.Put("/{id}/status", dashboardHandler.UpdateBookingStatus)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Get("/users", dashboardHandler.ListUsers)
		r.Put("/users/{id}/approve", dashboardHandler.ApproveUser)
		r.Put("/users/{id}/reject", dashboardHandler.RejectUser)
		r.Get("/bookings", dashboardHandler.ListBookings)
	})
}
