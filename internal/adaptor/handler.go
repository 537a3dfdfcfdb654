package adaptor

import (
	"context"
	"errors"
	"net/http"

	"servicehub/internal/data/entity"
	"servicehub/internal/flow"
	"servicehub/internal/usecase"
	"servicehub/pkg/backend"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	BookingFlow *BookingFlowHandler
	Catalog     *CatalogHandler
	Dashboard   *DashboardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		BookingFlow: NewBookingFlowHandler(service.BookingFlow, log),
		Catalog:     NewCatalogHandler(service.Catalog, log),
		Dashboard:   NewDashboardHandler(service.Dashboard, log),
	}
}

// sessionFrom reads the session set by the auth middleware and writes a 401
// when there is none.
func sessionFrom(w http.ResponseWriter, r *http.Request) (*entity.Session, bool) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return nil, false
	}
	return session, true
}

// handleServiceError maps service and backend errors to response envelopes.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	var apiErr *backend.APIError
	switch {
	case errors.Is(err, usecase.ErrValidationFailed),
		errors.Is(err, usecase.ErrInvalidTimeSlot),
		errors.Is(err, usecase.ErrInvalidDate):
		log.Warn(operation+" validation failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrNoActiveFlow),
		errors.Is(err, usecase.ErrServiceNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err), zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err), zap.String("operation", operation))
		utils.ResponseForbidden(w, "Insufficient permissions")

	case errors.Is(err, flow.ErrNotAtDateTime),
		errors.Is(err, flow.ErrNotAtPayment),
		errors.Is(err, flow.ErrPaymentPending),
		errors.Is(err, flow.ErrFlowReset):
		log.Warn(operation+" failed - invalid state", zap.Error(err), zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn(operation+" aborted", zap.Error(err), zap.String("operation", operation))
		utils.ResponseJSON(w, http.StatusRequestTimeout, false, "Request aborted", nil, nil)

	case errors.As(err, &apiErr):
		log.Error(operation+" failed - backend error",
			zap.Int("backend_status", apiErr.Status),
			zap.Error(err),
			zap.String("operation", operation))
		switch apiErr.Status {
		case http.StatusUnauthorized:
			utils.ResponseUnauthorized(w, "Backend rejected the session")
		case http.StatusForbidden:
			utils.ResponseForbidden(w, "Backend denied the request")
		case http.StatusNotFound:
			utils.ResponseNotFound(w, "Resource not found")
		default:
			utils.ResponseBadGateway(w, "Backend request failed")
		}

	default:
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
