package flow

import (
	"testing"
	"time"
)

func TestDefaultTimeSlots(t *testing.T) {
	slots := DefaultTimeSlots()

	if len(slots) != 18 {
		t.Fatalf("len(slots) = %d, want 18", len(slots))
	}
	if slots[0] != "09:00" || slots[1] != "09:30" || slots[len(slots)-1] != "17:30" {
		t.Fatalf("unexpected bounds: %v", slots)
	}
	if !IsOfferedSlot(slots, "10:00") {
		t.Fatal("10:00 should be offered")
	}
	if IsOfferedSlot(slots, "10:15") {
		t.Fatal("10:15 should not be offered")
	}
}

func TestTimeSlotsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		step       time.Duration
	}{
		{name: "bad start", start: "9am", end: "17:00", step: time.Hour},
		{name: "bad end", start: "09:00", end: "5pm", step: time.Hour},
		{name: "end before start", start: "17:00", end: "09:00", step: time.Hour},
		{name: "zero step", start: "09:00", end: "17:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TimeSlots(tt.start, tt.end, tt.step); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestStepNames(t *testing.T) {
	if StepDateTime.String() != "date_time" || StepConfirmation.String() != "confirmation" {
		t.Fatalf("unexpected step names %q, %q", StepDateTime, StepConfirmation)
	}
	if Step(9).String() != "step(9)" {
		t.Fatalf("unknown step rendered as %q", Step(9))
	}
	if StepPayment.Number() != 3 {
		t.Fatalf("StepPayment.Number() = %d, want 3", StepPayment.Number())
	}
}
