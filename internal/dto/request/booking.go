package request

type OpenBookingFlowRequest struct {
	ServiceID string `json:"service_id" validate:"required,max=64"`
}

// SelectDateTimeRequest sets either or both halves of the schedule.
type SelectDateTimeRequest struct {
	Date *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
}

type BookingDetailsRequest struct {
	Requirements string `json:"requirements" validate:"max=2000"`
	Notes        string `json:"notes" validate:"max=2000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
