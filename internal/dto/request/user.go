package request

type UserListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Role   string `json:"role" validate:"omitempty,oneof=customer provider admin"`
	Search string `json:"search" validate:"max=100"`
}

type RejectUserRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
}
