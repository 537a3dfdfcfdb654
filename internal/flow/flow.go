// Package flow implements the booking wizard: a linear
// DateTime -> Details -> Payment -> Confirmation state machine holding one
// booking draft for one service.
package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPaymentDelay = 2 * time.Second
	DefaultDismissDelay = 3 * time.Second
)

var (
	ErrNotAtDateTime  = errors.New("booking flow is not at the date and time step")
	ErrNotAtPayment   = errors.New("booking flow is not at the payment step")
	ErrPaymentPending = errors.New("payment already in progress")
	ErrFlowReset      = errors.New("booking flow was cancelled during payment")
)

// Draft is the not-yet-submitted booking data.
type Draft struct {
	ServiceID    string     `json:"service_id"`
	SelectedDate *time.Time `json:"selected_date,omitempty"`
	SelectedTime string     `json:"selected_time,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// IsEmpty reports whether nothing has been entered yet. The service reference
// is fixed for the life of the flow and does not count.
func (d Draft) IsEmpty() bool {
	return d.SelectedDate == nil && d.SelectedTime == "" && d.Requirements == "" && d.Notes == ""
}

func (d Draft) clone() Draft {
	if d.SelectedDate != nil {
		date := *d.SelectedDate
		d.SelectedDate = &date
	}
	return d
}

// Result is produced when the simulated payment resolves. ID is a local
// placeholder, not an identifier issued by any persistence layer.
type Result struct {
	ID string `json:"id"`
	Draft
	CreatedAt time.Time `json:"created_at"`
}

// Completion is emitted once the confirmation screen auto-dismisses.
type Completion struct {
	FlowID string
	Result Result
}

// State is a read-only snapshot of a flow.
type State struct {
	ID     string  `json:"id"`
	Step   Step    `json:"step"`
	Draft  Draft   `json:"draft"`
	Result *Result `json:"result,omitempty"`
	Paying bool    `json:"paying"`
}

type Option func(*Flow)

func WithPaymentDelay(d time.Duration) Option {
	return func(f *Flow) { f.paymentDelay = d }
}

func WithDismissDelay(d time.Duration) Option {
	return func(f *Flow) { f.dismissDelay = d }
}

// WithCompletions sets the channel that receives the Completion event. The
// send blocks, so the receiver must keep draining it.
func WithCompletions(ch chan<- Completion) Option {
	return func(f *Flow) { f.completions = ch }
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(f *Flow) { f.ids = ids }
}

type Flow struct {
	mu         sync.Mutex
	id         string
	serviceID  string
	step       Step
	draft      Draft
	result     *Result
	paying     bool
	generation uint64
	completed  uint64
	dismiss    *time.Timer

	paymentDelay time.Duration
	dismissDelay time.Duration
	completions  chan<- Completion
	ids          IDGenerator
}

// New opens a flow for serviceID at StepDateTime with an empty draft.
func New(serviceID string, opts ...Option) *Flow {
	f := &Flow{
		id:           uuid.NewString(),
		serviceID:    serviceID,
		step:         StepDateTime,
		draft:        Draft{ServiceID: serviceID},
		paymentDelay: DefaultPaymentDelay,
		dismissDelay: DefaultDismissDelay,
		ids:          defaultIDs,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) ID() string {
	return f.id
}

func (f *Flow) ServiceID() string {
	return f.serviceID
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := State{
		ID:     f.id,
		Step:   f.step,
		Draft:  f.draft.clone(),
		Paying: f.paying,
	}
	if f.result != nil {
		res := *f.result
		res.Draft = res.Draft.clone()
		state.Result = &res
	}
	return state
}

// Completed reports how many Completion events the flow has emitted. Once
// Cancel has returned the count no longer moves for earlier payments.
func (f *Flow) Completed() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// SelectDate sets the booking date. Like ClearDate and SelectTime it is only
// accepted at StepDateTime, so the schedule checked by Next cannot change
// once the flow has moved on.
func (f *Flow) SelectDate(date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDateTime {
		return ErrNotAtDateTime
	}
	f.draft.SelectedDate = &date
	return nil
}

func (f *Flow) ClearDate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDateTime {
		return ErrNotAtDateTime
	}
	f.draft.SelectedDate = nil
	return nil
}

// SelectTime sets the time slot. An empty slot clears it.
func (f *Flow) SelectTime(slot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDateTime {
		return ErrNotAtDateTime
	}
	f.draft.SelectedTime = slot
	return nil
}

// SetDetails stores the free-text fields. Neither is validated.
func (f *Flow) SetDetails(requirements, notes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Requirements = requirements
	f.draft.Notes = notes
}

// Next advances one step and returns the step the flow is on afterwards.
// Leaving DateTime needs both a date and a time; when either is missing the
// flow stays put without reporting an error. Payment only moves forward
// through Pay.
func (f *Flow) Next() Step {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepDateTime:
		if f.draft.SelectedDate != nil && f.draft.SelectedTime != "" {
			f.step = StepDetails
		}
	case StepDetails:
		f.step = StepPayment
	}
	return f.step
}

// Back moves one step backwards. Draft fields are kept.
func (f *Flow) Back() Step {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.paying {
		return f.step
	}
	switch f.step {
	case StepDetails:
		f.step = StepDateTime
	case StepPayment:
		f.step = StepDetails
	}
	return f.step
}

// Pay runs the simulated payment from StepPayment. On success the flow moves
// to StepConfirmation and, after the dismiss delay, emits a Completion and
// resets itself. The lock is not held while waiting, so Cancel can land
// mid-payment; in that case the payment outcome is dropped and ErrFlowReset
// is returned.
func (f *Flow) Pay(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if f.step != StepPayment {
		f.mu.Unlock()
		return Result{}, ErrNotAtPayment
	}
	if f.paying {
		f.mu.Unlock()
		return Result{}, ErrPaymentPending
	}
	f.paying = true
	gen := f.generation
	draft := f.draft.clone()
	delay := f.paymentDelay
	f.mu.Unlock()

	res, err := SimulatePayment(ctx, draft, delay, f.ids)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		return Result{}, ErrFlowReset
	}
	f.paying = false
	if err != nil {
		return Result{}, err
	}

	f.step = StepConfirmation
	f.result = &res
	f.dismiss = time.AfterFunc(f.dismissDelay, func() { f.complete(gen) })
	return res, nil
}

// Cancel discards the draft and returns the flow to StepDateTime, whatever
// step it is on.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Flow) complete(gen uint64) {
	f.mu.Lock()
	if gen != f.generation || f.step != StepConfirmation || f.result == nil {
		f.mu.Unlock()
		return
	}
	done := Completion{FlowID: f.id, Result: *f.result}
	f.completed++
	f.dismiss = nil
	f.resetLocked()
	f.mu.Unlock()

	if f.completions != nil {
		f.completions <- done
	}
}

func (f *Flow) resetLocked() {
	if f.dismiss != nil {
		f.dismiss.Stop()
		f.dismiss = nil
	}
	f.generation++
	f.step = StepDateTime
	f.draft = Draft{ServiceID: f.serviceID}
	f.result = nil
	f.paying = false
}
