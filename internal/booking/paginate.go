package booking

// Pagination defaults and bounds shared by every listing operation.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest carries 1-based pagination parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request into valid bounds: page >= 1 and limit
// within [1, MaxPageLimit], falling back to DefaultPageLimit when the
// limit is unset or non-positive.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo describes one page of a result set.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPageInfo builds page metadata for a normalized request and a total
// item count. TotalPages is ceil(total/limit).
func NewPageInfo(req PageRequest, total int) PageInfo {
	return PageInfo{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: total,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	}
}
