package wire

import (
	"servicehub/internal/adaptor"
	"servicehub/pkg/middleware"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBookingFlow(
	r chi.Router,
	bookingHandler *adaptor.BookingFlowHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/timeslots - Slots offered on every bookable day
	r.Get("/api/timeslots", bookingHandler.TimeSlots)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Route("/api/booking-flow", func(r chi.Router) {
			r.Post("/", bookingHandler.Open)
			r.Get("/", bookingHandler.Get)
			r.Delete("/", bookingHandler.Cancel)
			r.Put("/datetime", bookingHandler.SelectDateTime)
			r.Put("/details", bookingHandler.SetDetails)
			r.Post("/next", bookingHandler.Next)
			r.Post("/back", bookingHandler.Back)
			r.Post("/pay", bookingHandler.Pay)
		})

		// GET /api/user/bookings - Confirmed bookings recorded by this gateway
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
		r.Get("/api/user/bookings/{reference}", bookingHandler.GetUserBooking)
	})
}
