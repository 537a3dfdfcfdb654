package adaptor

import (
	"encoding/json"
	"net/http"

	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"
	"servicehub/internal/usecase"
	"servicehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingFlowHandler struct {
	service usecase.BookingFlowService
	log     *zap.Logger
}

func NewBookingFlowHandler(service usecase.BookingFlowService, log *zap.Logger) *BookingFlowHandler {
	return &BookingFlowHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking_flow")),
	}
}

// Open handles POST /api/booking-flow
func (h *BookingFlowHandler) Open(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req request.OpenBookingFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.Open(r.Context(), session, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "open booking flow")
		return
	}

	utils.ResponseCreated(w, "success", state)
}

// Get handles GET /api/booking-flow
func (h *BookingFlowHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	state, err := h.service.Get(r.Context(), session)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking flow")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// SelectDateTime handles PUT /api/booking-flow/datetime
func (h *BookingFlowHandler) SelectDateTime(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req request.SelectDateTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.SelectDateTime(r.Context(), session, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select date and time")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// SetDetails handles PUT /api/booking-flow/details
func (h *BookingFlowHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req request.BookingDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.SetDetails(r.Context(), session, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set booking details")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// Next handles POST /api/booking-flow/next. A blocked advance is not an
// error; the response shows the unchanged step.
func (h *BookingFlowHandler) Next(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	state, err := h.service.Next(r.Context(), session)
	if err != nil {
		handleServiceError(w, h.log, err, "advance booking flow")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// Back handles POST /api/booking-flow/back
func (h *BookingFlowHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	state, err := h.service.Back(r.Context(), session)
	if err != nil {
		handleServiceError(w, h.log, err, "step back booking flow")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// Pay handles POST /api/booking-flow/pay. The request blocks for the
// simulated payment delay.
func (h *BookingFlowHandler) Pay(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	state, err := h.service.Pay(r.Context(), session)
	if err != nil {
		handleServiceError(w, h.log, err, "pay booking")
		return
	}

	utils.ResponseSuccess(w, "Payment successful", state)
}

// Cancel handles DELETE /api/booking-flow
func (h *BookingFlowHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	state, err := h.service.Cancel(r.Context(), session)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking flow")
		return
	}

	utils.ResponseSuccess(w, "Booking flow cancelled", state)
}

// TimeSlots handles GET /api/timeslots (public)
func (h *BookingFlowHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", response.TimeSlotsResponse{Slots: h.service.TimeSlots()})
}

// GetUserBookings handles GET /api/user/bookings
func (h *BookingFlowHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), session, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetUserBooking handles GET /api/user/bookings/{reference}
func (h *BookingFlowHandler) GetUserBooking(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	booking, err := h.service.GetUserBooking(r.Context(), session, reference)
	if err != nil {
		handleServiceError(w, h.log, err, "get user booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
