package catalog

const (
	DefaultPageSize     = 50
	MaxPageSize         = 100
	DefaultPopularLimit = 10
)

// Page is a clamped page request over a known total.
type Page struct {
	Number int // 1-based, never past the last page when rows exist
	Limit  int
	Pages  int
	Offset int
}

// Paginate clamps page to at least 1 and limit to [1, MaxPageSize]. When
// rows exist, a page past the end is moved to the last page.
func Paginate(total int64, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	limit = ClampLimit(limit)

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages > 0 && page > pages {
		page = pages
	}
	return Page{
		Number: page,
		Limit:  limit,
		Pages:  pages,
		Offset: (page - 1) * limit,
	}
}

// ClampLimit bounds a requested page size to [1, MaxPageSize].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
