package store

const (
	// DefaultPageSize is the page size for poem and story listings.
	DefaultPageSize = 12
	// DefaultMusicPageSize is the page size for music listings.
	DefaultMusicPageSize = 24
	// MaxPageSize caps how many items a single page may return.
	MaxPageSize = 100
)

// PageRequest contains offset pagination request parameters.
type PageRequest struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// Normalize checks and corrects pagination parameters.
// defaultLimit is applied when no limit was requested.
func (p *PageRequest) Normalize(defaultLimit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

// Offset returns the row offset for the requested page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page contains one page of results plus listing metadata.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"` // Total matching rows across all pages
	Num   int `json:"page"`
	Limit int `json:"limit"`
}
