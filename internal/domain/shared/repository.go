package shared

// MaxPageSize caps every list query
const MaxPageSize = 100

// Filter is the list query handed to repositories. Status is the raw status
// value to match; each repository knows which column it applies to.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
}

// DefaultFilter returns the first page of 20, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the page size clamped to MaxPageSize. Zero means unbounded.
func (f Filter) Limit() int {
	if f.PageSize > MaxPageSize {
		return MaxPageSize
	}
	if f.PageSize < 0 {
		return 0
	}
	return f.PageSize
}
