package flow

import "fmt"

// Step is one stage of the booking wizard. Steps are strictly ordered.
type Step int

const (
	StepDateTime Step = iota
	StepDetails
	StepPayment
	StepConfirmation
)

var stepNames = map[Step]string{
	StepDateTime:     "date_time",
	StepDetails:      "details",
	StepPayment:      "payment",
	StepConfirmation: "confirmation",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// MarshalText renders the step name in JSON payloads.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(text []byte) error {
	for step, name := range stepNames {
		if name == string(text) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("invalid step %q", string(text))
}

// Number is the 1-based position of the step, as shown in the wizard header.
func (s Step) Number() int {
	return int(s) + 1
}
