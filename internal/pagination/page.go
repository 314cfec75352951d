// Package pagination provides offset/limit page math for list endpoints.
package pagination

// DefaultLimit is the page size used when a request does not specify one.
const DefaultLimit = 5

// Params holds offset/limit paging parameters.
type Params struct {
	Offset int
	Limit  int
}

// Normalize clamps negative offsets and replaces non-positive limits with
// the given default.
func (p Params) Normalize(defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	return p
}

// TotalPages returns ceil(total/limit). A non-positive limit is treated as
// the default page size so the result is always defined.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Page represents one page of a counted result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPage builds a Page from items plus the total count and page size.
func NewPage[T any](items []T, total, limit int) Page[T] {
	return Page[T]{
		Items:      items,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}
