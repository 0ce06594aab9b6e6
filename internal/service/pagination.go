package service

const (
	// DefaultPageLimit applies when the caller passes no limit.
	DefaultPageLimit = 100
	// MaxPageLimit caps any requested limit.
	MaxPageLimit = 100
)

// Page is an offset/limit window over an ordered listing.
type Page struct {
	Skip  int
	Limit int
}

// NewPage validates an explicit window. Callers substitute DefaultPageLimit
// for an absent limit; a limit of zero is honored and yields nothing.
// Limits above MaxPageLimit are clamped.
func NewPage(skip, limit int) (Page, error) {
	if skip < 0 || limit < 0 {
		return Page{}, ErrInvalidPage
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Skip: skip, Limit: limit}, nil
}
