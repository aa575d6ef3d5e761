package review

import "strings"

// Tab selects which entry kinds are visible.
type Tab string

const (
	TabAll          Tab = "all"
	TabApplications Tab = "applications"
	TabNominations  Tab = "nominations"
)

func (t Tab) Valid() bool {
	return t == TabAll || t == TabApplications || t == TabNominations
}

func (t Tab) Matches(kind EntryKind) bool {
	switch t {
	case TabApplications:
		return kind == KindApplication
	case TabNominations:
		return kind == KindNomination
	default:
		return true
	}
}

func ParseTab(raw string) (Tab, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return TabAll, true
	case "application", "applications":
		return TabApplications, true
	case "nomination", "nominations":
		return TabNominations, true
	default:
		return "", false
	}
}

// StatusFilter is a set of concrete statuses. The empty set means "all":
// either nothing is picked and every status matches, or at least one
// concrete status is picked. That representation keeps the invariant by
// construction - "all" can never coexist with concrete picks.
type StatusFilter struct {
	picked map[Status]struct{}
}

func NewStatusFilter() StatusFilter {
	return StatusFilter{}
}

func (f StatusFilter) All() bool {
	return len(f.picked) == 0
}

func (f StatusFilter) Contains(status Status) bool {
	_, ok := f.picked[status]
	return ok
}

func (f StatusFilter) Matches(status Status) bool {
	if f.All() {
		return true
	}
	return f.Contains(status)
}

// Selected returns the picked statuses in AllStatuses order, or nil when the
// filter is in the "all" state.
func (f StatusFilter) Selected() []Status {
	if f.All() {
		return nil
	}
	out := make([]Status, 0, len(f.picked))
	for _, status := range AllStatuses {
		if f.Contains(status) {
			out = append(out, status)
		}
	}
	return out
}

// Toggle flips one concrete status and returns the resulting filter. The
// receiver is not modified. Removing the last picked status reverts to the
// "all" state.
func (f StatusFilter) Toggle(status Status) StatusFilter {
	if !status.Valid() {
		return f
	}

	next := make(map[Status]struct{}, len(f.picked)+1)
	for picked := range f.picked {
		next[picked] = struct{}{}
	}

	if _, ok := next[status]; ok {
		delete(next, status)
	} else {
		next[status] = struct{}{}
	}

	if len(next) == 0 {
		return StatusFilter{}
	}
	return StatusFilter{picked: next}
}

// Reset returns the "all" state, clearing every concrete pick.
func (f StatusFilter) Reset() StatusFilter {
	return StatusFilter{}
}

// Filter is the visible-subset selection for the review table.
type Filter struct {
	Tab      Tab
	Statuses StatusFilter
	Query    string
}

func NewFilter() Filter {
	return Filter{Tab: TabAll, Statuses: NewStatusFilter()}
}

// ApplyFilter computes the visible subset. It is pure and order-preserving:
// the result is a stable subsequence of the input.
func ApplyFilter(entries []Entry, filter Filter) []Entry {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		core := entry.Core()
		if !filter.Tab.Matches(entry.Kind()) {
			continue
		}
		if !filter.Statuses.Matches(core.Status) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(core.FullName), query) &&
			!strings.Contains(strings.ToLower(core.Topic), query) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
