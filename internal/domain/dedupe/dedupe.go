// Package dedupe provides an ordered, capped, first-seen string set.
//
// The feedback generator uses it to keep flagged features and suggestions
// unique, in discovery order, and bounded.
package dedupe

// List records strings in first-seen order, dropping duplicates and
// anything past the configured limit. It is not safe for concurrent use;
// each request builds its own.
type List struct {
	limit int
	seen  map[string]struct{}
	items []string
}

const defaultLimit = 5

// NewList creates a List with configuration options.
func NewList(opts ...Option) *List {
	l := &List{
		limit: defaultLimit,
	}

	for _, opt := range opts {
		opt(l)
	}

	hint := l.limit
	if hint <= 0 {
		hint = defaultLimit
	}
	l.seen = make(map[string]struct{}, hint)
	l.items = make([]string, 0, hint)
	return l
}

// Add records s. It returns false when s is a duplicate or the list is
// already at its limit.
func (l *List) Add(s string) bool {
	if l.limit > 0 && len(l.items) >= l.limit {
		return false
	}
	if _, dup := l.seen[s]; dup {
		return false
	}
	l.seen[s] = struct{}{}
	l.items = append(l.items, s)
	return true
}

// Items returns the recorded strings in first-seen order. The returned
// slice is never nil.
func (l *List) Items() []string {
	return l.items
}

// Len returns the number of recorded strings.
func (l *List) Len() int {
	return len(l.items)
}
