package request

// MaxPage bounds the page number so offsets stay well inside int range.
const MaxPage = 10000

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1,max=10000"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (min(p.Page, MaxPage) - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
