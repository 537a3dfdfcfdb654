package usecase

import (
	"context"
	"sync"

	"servicehub/internal/data/entity"
	"servicehub/pkg/backend"

	"github.com/google/uuid"
)

type fakeBackend struct {
	mu         sync.Mutex
	services   []entity.Service
	categories []entity.Category
	bookings   []entity.Booking
	users      []entity.User
	err        error

	created  []backend.CreateBookingInput
	tokens   []string
	approved []string
	rejected map[string]string
}

func (f *fakeBackend) ListServices(ctx context.Context) ([]entity.Service, error) {
	return f.services, f.err
}

func (f *fakeBackend) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return f.categories, f.err
}

func (f *fakeBackend) CreateBooking(ctx context.Context, token string, in backend.CreateBookingInput) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	f.tokens = append(f.tokens, token)
	return &entity.Booking{ID: "remote-1", ServiceID: in.ServiceID, Status: entity.BookingStatusPending}, nil
}

func (f *fakeBackend) ListBookings(ctx context.Context, token string) ([]entity.Booking, error) {
	return f.bookings, f.err
}

func (f *fakeBackend) UpdateBookingStatus(ctx context.Context, token, bookingID string, status entity.BookingStatus) (*entity.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == bookingID {
			b.Status = status
			return &b, nil
		}
	}
	return nil, &backend.APIError{Status: 404}
}

func (f *fakeBackend) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	return f.users, f.err
}

func (f *fakeBackend) ApproveUser(ctx context.Context, token, userID string) error {
	f.approved = append(f.approved, userID)
	return f.err
}

func (f *fakeBackend) RejectUser(ctx context.Context, token, userID, reason string) error {
	if f.rejected == nil {
		f.rejected = make(map[string]string)
	}
	f.rejected[userID] = reason
	return f.err
}

func (f *fakeBackend) createdBookings() []backend.CreateBookingInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.CreateBookingInput(nil), f.created...)
}

type fakeResultRepo struct {
	mu        sync.Mutex
	results   []*entity.BookingResult
	backendID map[uuid.UUID]string
	saved     chan *entity.BookingResult
	linked    chan string
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{
		backendID: make(map[uuid.UUID]string),
		saved:     make(chan *entity.BookingResult, 4),
		linked:    make(chan string, 4),
	}
}

func (r *fakeResultRepo) Create(ctx context.Context, result *entity.BookingResult) error {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
	r.saved <- result
	return nil
}

func (r *fakeResultRepo) FindByReference(ctx context.Context, reference string) (*entity.BookingResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.results {
		if res.Reference == reference {
			return res, nil
		}
	}
	return nil, nil
}

func (r *fakeResultRepo) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.BookingResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BookingResult
	for _, res := range r.results {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeResultRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, res := range r.results {
		if res.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeResultRepo) SetBackendID(ctx context.Context, id uuid.UUID, backendID string) error {
	r.mu.Lock()
	r.backendID[id] = backendID
	r.mu.Unlock()
	r.linked <- backendID
	return nil
}
