package models

// PageRequest carries the page/size/sortBy/direction query parameters.
// SortBy is an API-level field name; repositories map it onto a whitelisted
// column and fall back to their default when it is unknown.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction string // "asc" or "desc"
}

func (p PageRequest) Offset() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page * p.Size
}

func (p PageRequest) Limit() int {
	if p.Size <= 0 {
		return 10
	}
	return p.Size
}

// Desc reports whether the requested direction is descending. Anything that
// is not "asc" (case-insensitive callers normalize first) sorts descending.
func (p PageRequest) Desc() bool {
	return p.Direction != "asc"
}

type PagedResponse struct {
	Content       any   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

func NewPagedResponse(content any, p PageRequest, total int64) PagedResponse {
	size := p.Limit()
	pages := int((total + int64(size) - 1) / int64(size))
	return PagedResponse{
		Content:       content,
		Page:          p.Page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		Last:          p.Page >= pages-1,
	}
}
