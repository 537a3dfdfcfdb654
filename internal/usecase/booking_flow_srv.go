package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"servicehub/internal/data/entity"
	"servicehub/internal/data/repository"
	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"
	"servicehub/internal/flow"
	"servicehub/pkg/backend"
	"servicehub/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const completionTimeout = 10 * time.Second

type BookingFlowService interface {
	Open(ctx context.Context, session *entity.Session, req *request.OpenBookingFlowRequest) (*response.BookingFlowResponse, error)
	Get(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error)
	SelectDateTime(ctx context.Context, session *entity.Session, req *request.SelectDateTimeRequest) (*response.BookingFlowResponse, error)
	SetDetails(ctx context.Context, session *entity.Session, req *request.BookingDetailsRequest) (*response.BookingFlowResponse, error)
	Next(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error)
	Back(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error)
	Pay(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error)
	Cancel(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error)

	TimeSlots() []string
	GetUserBookings(ctx context.Context, session *entity.Session, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResultResponse], error)
	GetUserBooking(ctx context.Context, session *entity.Session, reference string) (*response.BookingResultResponse, error)

	// Close cancels every open flow and stops the completion consumer.
	Close()
}

// activeFlow is one user's open wizard plus what is needed to persist it
// once it completes.
type activeFlow struct {
	flow    *flow.Flow
	session entity.Session
	price   decimal.Decimal

	recorded uint64 // completions handled, guarded by bookingFlowService.mu
}

type bookingFlowService struct {
	repo   repository.BookingResultRepository
	api    BackendClient
	config utils.BookingConfig
	slots  []string
	now    func() time.Time
	log    *zap.Logger

	mu     sync.Mutex
	flows  map[string]*activeFlow // keyed by user id
	owners map[string]*activeFlow // keyed by flow id

	completions chan flow.Completion
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

func NewBookingFlowService(repo repository.BookingResultRepository, api BackendClient, config utils.BookingConfig, log *zap.Logger) (BookingFlowService, error) {
	start, end := config.SlotStart, config.SlotEnd
	if start == "" {
		start = flow.DefaultSlotStart
	}
	if end == "" {
		end = flow.DefaultSlotEnd
	}
	slots, err := flow.TimeSlots(start, end, flow.DefaultSlotStep)
	if err != nil {
		return nil, fmt.Errorf("build time slots: %w", err)
	}

	s := &bookingFlowService{
		repo:        repo,
		api:         api,
		config:      config,
		slots:       slots,
		now:         time.Now,
		log:         log.With(zap.String("service", "booking_flow")),
		flows:       make(map[string]*activeFlow),
		owners:      make(map[string]*activeFlow),
		completions: make(chan flow.Completion, 16),
		done:        make(chan struct{}),
	}

	s.wg.Add(1)
	go s.consume()

	return s, nil
}

func (s *bookingFlowService) Open(ctx context.Context, session *entity.Session, req *request.OpenBookingFlowRequest) (*response.BookingFlowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Open booking flow validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	service, err := findActiveService(ctx, s.api, req.ServiceID)
	if err != nil {
		return nil, err
	}

	opts := []flow.Option{flow.WithCompletions(s.completions)}
	if s.config.PaymentDelay > 0 {
		opts = append(opts, flow.WithPaymentDelay(s.config.PaymentDelay))
	}
	if s.config.DismissDelay > 0 {
		opts = append(opts, flow.WithDismissDelay(s.config.DismissDelay))
	}
	f := flow.New(service.ID, opts...)

	af := &activeFlow{
		flow:    f,
		session: *session,
		price:   service.Price,
	}

	s.mu.Lock()
	if old, ok := s.flows[session.UserID]; ok {
		old.flow.Cancel()
		s.releaseLocked(old)
		s.log.Info("Replaced open booking flow",
			zap.String("user_id", session.UserID),
			zap.String("flow_id", old.flow.ID()),
		)
	}
	s.flows[session.UserID] = af
	s.owners[f.ID()] = af
	s.mu.Unlock()

	s.log.Info("Booking flow opened",
		zap.String("user_id", session.UserID),
		zap.String("flow_id", f.ID()),
		zap.String("service_id", service.ID),
	)

	return stateResponse(f), nil
}

func (s *bookingFlowService) Get(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error) {
	af, err := s.active(session)
	if err != nil {
		return nil, err
	}
	return stateResponse(af.flow), nil
}

func (s *bookingFlowService) SelectDateTime(ctx context.Context, session *entity.Session, req *request.SelectDateTimeRequest) (*response.BookingFlowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	af, err := s.active(session)
	if err != nil {
		return nil, err
	}

	var date *time.Time
	if req.Date != nil && *req.Date != "" {
		d, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, *req.Date)
		}
		y, m, day := s.now().Date()
		if d.Before(time.Date(y, m, day, 0, 0, 0, 0, time.UTC)) {
			return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, *req.Date)
		}
		date = &d
	}
	if req.Time != nil && *req.Time != "" && !flow.IsOfferedSlot(s.slots, *req.Time) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, *req.Time)
	}

	if req.Date != nil {
		if date == nil {
			err = af.flow.ClearDate()
		} else {
			err = af.flow.SelectDate(*date)
		}
		if err != nil {
			return nil, err
		}
	}
	if req.Time != nil {
		if err := af.flow.SelectTime(*req.Time); err != nil {
			return nil, err
		}
	}

	return stateResponse(af.flow), nil
}

func (s *bookingFlowService) SetDetails(ctx context.Context, session *entity.Session, req *request.BookingDetailsRequest) (*response.BookingFlowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	af, err := s.active(session)
	if err != nil {
		return nil, err
	}

	af.flow.SetDetails(req.Requirements, req.Notes)
	return stateResponse(af.flow), nil
}

func (s *bookingFlowService) Next(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error) {
	af, err := s.active(session)
	if err != nil {
		return nil, err
	}

	af.flow.Next()
	return stateResponse(af.flow), nil
}

func (s *bookingFlowService) Back(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error) {
	af, err := s.active(session)
	if err != nil {
		return nil, err
	}

	af.flow.Back()
	return stateResponse(af.flow), nil
}

func (s *bookingFlowService) Pay(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error) {
	af, err := s.active(session)
	if err != nil {
		return nil, err
	}

	result, err := af.flow.Pay(ctx)
	if err != nil {
		s.log.Warn("Booking payment did not complete",
			zap.String("flow_id", af.flow.ID()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("pay booking flow: %w", err)
	}

	s.log.Info("Booking payment succeeded",
		zap.String("user_id", session.UserID),
		zap.String("flow_id", af.flow.ID()),
		zap.String("booking_id", result.ID),
	)

	// Built from the result rather than re-read, since a short dismiss delay
	// may already have reset the flow.
	resp := response.FlowStateToResponse(flow.State{
		ID:     af.flow.ID(),
		Step:   flow.StepConfirmation,
		Draft:  result.Draft,
		Result: &result,
	})
	return &resp, nil
}

func (s *bookingFlowService) Cancel(ctx context.Context, session *entity.Session) (*response.BookingFlowResponse, error) {
	af, err := s.active(session)
	if err != nil {
		return nil, err
	}

	af.flow.Cancel()

	s.mu.Lock()
	if s.flows[session.UserID] == af {
		delete(s.flows, session.UserID)
	}
	s.releaseLocked(af)
	s.mu.Unlock()

	s.log.Info("Booking flow cancelled",
		zap.String("user_id", session.UserID),
		zap.String("flow_id", af.flow.ID()),
	)

	return stateResponse(af.flow), nil
}

func (s *bookingFlowService) TimeSlots() []string {
	slots := make([]string, len(s.slots))
	copy(slots, s.slots)
	return slots
}

func (s *bookingFlowService) GetUserBookings(ctx context.Context, session *entity.Session, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResultResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	results, err := s.repo.FindByUserID(ctx, session.UserID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.CountByUserID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	data := make([]response.BookingResultResponse, len(results))
	for i, r := range results {
		data[i] = response.BookingResultToResponse(r)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *bookingFlowService) GetUserBooking(ctx context.Context, session *entity.Session, reference string) (*response.BookingResultResponse, error) {
	result, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", reference, err)
	}
	if result == nil || result.UserID != session.UserID {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, reference)
	}

	resp := response.BookingResultToResponse(result)
	return &resp, nil
}

func (s *bookingFlowService) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		for userID, af := range s.flows {
			af.flow.Cancel()
			delete(s.flows, userID)
		}
		clear(s.owners)
		s.mu.Unlock()

		close(s.done)
		s.wg.Wait()
	})
}

func (s *bookingFlowService) active(session *entity.Session) (*activeFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	af, ok := s.flows[session.UserID]
	if !ok {
		return nil, ErrNoActiveFlow
	}
	return af, nil
}

// releaseLocked forgets a cancelled flow's owner entry unless a completion it
// emitted before the cancel is still queued; handleCompletion drops it then.
func (s *bookingFlowService) releaseLocked(af *activeFlow) {
	if af.flow.Completed() <= af.recorded {
		delete(s.owners, af.flow.ID())
	}
}

func (s *bookingFlowService) consume() {
	defer s.wg.Done()

	for {
		select {
		case c := <-s.completions:
			s.handleCompletion(c)
		case <-s.done:
			return
		}
	}
}

// handleCompletion records a dismissed confirmation and closes the flow. A
// paid booking is recorded even when the user reopened or cancelled the flow
// after it was emitted.
func (s *bookingFlowService) handleCompletion(c flow.Completion) {
	s.mu.Lock()
	af, ok := s.owners[c.FlowID]
	if ok {
		af.recorded++
		if af.recorded >= af.flow.Completed() {
			delete(s.owners, c.FlowID)
		}
		if s.flows[af.session.UserID] == af {
			delete(s.flows, af.session.UserID)
		}
	}
	s.mu.Unlock()

	if !ok {
		s.log.Warn("Completion for unknown booking flow", zap.String("flow_id", c.FlowID))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	res := c.Result
	record := &entity.BookingResult{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		Reference:    res.ID,
		FlowID:       c.FlowID,
		UserID:       af.session.UserID,
		ServiceID:    res.ServiceID,
		BookingTime:  res.SelectedTime,
		Requirements: utils.StringPtr(res.Requirements),
		Notes:        utils.StringPtr(res.Notes),
		ConfirmedAt:  res.CreatedAt,
	}
	if res.SelectedDate != nil {
		record.BookingDate = *res.SelectedDate
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error("Failed to save booking result",
			zap.String("reference", record.Reference),
			zap.Error(err),
		)
		return
	}

	s.log.Info("Booking confirmed",
		zap.String("reference", record.Reference),
		zap.String("user_id", record.UserID),
		zap.String("service_id", record.ServiceID),
	)

	if s.config.SubmitToBackend {
		s.submit(ctx, af, record)
	}
}

func (s *bookingFlowService) submit(ctx context.Context, af *activeFlow, record *entity.BookingResult) {
	if !af.session.ExpiresAt.IsZero() && s.now().After(af.session.ExpiresAt) {
		s.log.Warn("Session expired before backend submission",
			zap.String("reference", record.Reference),
		)
		return
	}

	booking, err := s.api.CreateBooking(ctx, af.session.Token, backend.CreateBookingInput{
		ServiceID:    record.ServiceID,
		Date:         record.BookingDate.Format("2006-01-02"),
		Time:         record.BookingTime,
		Requirements: record.Requirements,
		Notes:        record.Notes,
		Amount:       af.price,
		Reference:    record.Reference,
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			s.log.Error("Backend rejected booking",
				zap.String("reference", record.Reference),
				zap.Int("status", apiErr.Status),
			)
			return
		}
		s.log.Error("Failed to submit booking", zap.String("reference", record.Reference), zap.Error(err))
		return
	}

	if err := s.repo.SetBackendID(ctx, record.ID, booking.ID); err != nil {
		s.log.Error("Failed to store backend booking id",
			zap.String("reference", record.Reference),
			zap.Error(err),
		)
		return
	}
	record.BackendID = &booking.ID
}

func stateResponse(f *flow.Flow) *response.BookingFlowResponse {
	resp := response.FlowStateToResponse(f.State())
	return &resp
}
