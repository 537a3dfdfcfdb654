package flow

import (
	"fmt"
	"slices"
	"time"
)

const slotLayout = "15:04"

const (
	DefaultSlotStart = "09:00"
	DefaultSlotEnd   = "17:30"
	DefaultSlotStep  = 30 * time.Minute
)

// TimeSlots lists the fixed slot labels from start to end inclusive.
// Slots are static; they say nothing about provider availability.
func TimeSlots(start, end string, step time.Duration) ([]string, error) {
	if step <= 0 {
		return nil, fmt.Errorf("invalid slot step %s", step)
	}

	from, err := time.Parse(slotLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid slot start %q: %w", start, err)
	}
	to, err := time.Parse(slotLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid slot end %q: %w", end, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("slot end %s is before start %s", end, start)
	}

	var slots []string
	for t := from; !t.After(to); t = t.Add(step) {
		slots = append(slots, t.Format(slotLayout))
	}
	return slots, nil
}

// DefaultTimeSlots returns the half-hour labels 09:00 through 17:30.
func DefaultTimeSlots() []string {
	slots, _ := TimeSlots(DefaultSlotStart, DefaultSlotEnd, DefaultSlotStep)
	return slots
}

func IsOfferedSlot(slots []string, slot string) bool {
	return slices.Contains(slots, slot)
}
