package response

import (
	"time"

	"servicehub/internal/data/entity"
	"servicehub/internal/flow"
)

type BookingFlowResponse struct {
	FlowID       string      `json:"flow_id"`
	Step         flow.Step   `json:"step"`
	StepNumber   int         `json:"step_number"`
	CanAdvance   bool        `json:"can_advance"`
	Paying       bool        `json:"paying"`
	ServiceID    string      `json:"service_id"`
	SelectedDate *string     `json:"selected_date,omitempty"`
	SelectedTime string      `json:"selected_time,omitempty"`
	Requirements string      `json:"requirements,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	Result       *FlowResult `json:"result,omitempty"`
}

type FlowResult struct {
	BookingID string    `json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TimeSlotsResponse struct {
	Slots []string `json:"slots"`
}

type BookingResultResponse struct {
	ID           string    `json:"id"`
	Reference    string    `json:"reference"`
	ServiceID    string    `json:"service_id"`
	BookingDate  string    `json:"booking_date"`
	BookingTime  string    `json:"booking_time"`
	Requirements *string   `json:"requirements,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	BackendID    *string   `json:"backend_id,omitempty"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
}

type BookingResponse struct {
	ID           string               `json:"id"`
	ServiceID    string               `json:"service_id"`
	ServiceName  string               `json:"service_name,omitempty"`
	CustomerID   string               `json:"customer_id"`
	ProviderID   string               `json:"provider_id"`
	Date         string               `json:"date"`
	Time         string               `json:"time"`
	Requirements *string              `json:"requirements,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	Amount       string               `json:"amount"`
	Status       entity.BookingStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Helper converters
func FlowStateToResponse(state flow.State) BookingFlowResponse {
	resp := BookingFlowResponse{
		FlowID:       state.ID,
		Step:         state.Step,
		StepNumber:   state.Step.Number(),
		Paying:       state.Paying,
		ServiceID:    state.Draft.ServiceID,
		SelectedTime: state.Draft.SelectedTime,
		Requirements: state.Draft.Requirements,
		Notes:        state.Draft.Notes,
	}

	if state.Draft.SelectedDate != nil {
		date := state.Draft.SelectedDate.Format("2006-01-02")
		resp.SelectedDate = &date
	}

	switch state.Step {
	case flow.StepDateTime:
		resp.CanAdvance = state.Draft.SelectedDate != nil && state.Draft.SelectedTime != ""
	case flow.StepDetails:
		resp.CanAdvance = true
	}

	if state.Result != nil {
		resp.Result = &FlowResult{
			BookingID: state.Result.ID,
			CreatedAt: state.Result.CreatedAt,
		}
	}

	return resp
}

func BookingResultToResponse(result *entity.BookingResult) BookingResultResponse {
	return BookingResultResponse{
		ID:           result.ID.String(),
		Reference:    result.Reference,
		ServiceID:    result.ServiceID,
		BookingDate:  result.BookingDate.Format("2006-01-02"),
		BookingTime:  result.BookingTime,
		Requirements: result.Requirements,
		Notes:        result.Notes,
		BackendID:    result.BackendID,
		ConfirmedAt:  result.ConfirmedAt,
	}
}

func BookingToResponse(b entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		ServiceID:    b.ServiceID,
		ServiceName:  b.ServiceName,
		CustomerID:   b.CustomerID,
		ProviderID:   b.ProviderID,
		Date:         b.Date,
		Time:         b.Time,
		Requirements: b.Requirements,
		Notes:        b.Notes,
		Amount:       b.Amount.StringFixed(2),
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}
}
