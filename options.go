package cellgraph

// Limits bounds the valid positions a Sheet will accept. Spec §3
// calls MAX_ROWS/MAX_COLS "external constants"; a functional option on
// NewSheet is the idiomatic Go way to make them overridable without
// pulling in a configuration library (see SPEC_FULL.md §3).
type Limits struct {
	MaxRows int
	MaxCols int
}

// DefaultLimits matches spec §3's typical values.
var DefaultLimits = Limits{MaxRows: 16384, MaxCols: 16384}

// Option configures a Sheet at construction time.
type Option func(*Sheet)

// WithLimits overrides the sheet's row/column limits.
func WithLimits(limits Limits) Option {
	return func(s *Sheet) {
		s.limits = limits
	}
}
