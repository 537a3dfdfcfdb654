package flow

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// IDGenerator hands out booking reference IDs.
type IDGenerator interface {
	NextID() string
}

// TimeIDs generates time-based references of the form BOOK-YYYYMMDD-HHMMSS-NNNN.
// The trailing sequence keeps IDs unique within one process; nothing is checked
// against a server.
type TimeIDs struct {
	seq atomic.Uint64
	now func() time.Time
}

func NewTimeIDs() *TimeIDs {
	return &TimeIDs{now: time.Now}
}

func (g *TimeIDs) NextID() string {
	now := g.now()
	return fmt.Sprintf("BOOK-%s-%s-%04d", now.Format("20060102"), now.Format("150405"), g.seq.Add(1))
}

var defaultIDs = NewTimeIDs()

// SimulatePayment stands in for a payment gateway. It waits for delay and then
// always succeeds with a freshly generated booking reference. The only way it
// returns an error is ctx being done before the delay elapses.
func SimulatePayment(ctx context.Context, draft Draft, delay time.Duration, ids IDGenerator) (Result, error) {
	if ids == nil {
		ids = defaultIDs
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
	}

	return Result{
		ID:        ids.NextID(),
		Draft:     draft.clone(),
		CreatedAt: time.Now(),
	}, nil
}
