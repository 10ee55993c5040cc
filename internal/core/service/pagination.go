package service

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// clampPage applies the default limit and the upper cap, and floors offset at 0.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
