package keywords

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrBadFilterMode is returned by ParseFilterMode.
var ErrBadFilterMode = errors.New("keywords: unknown filter mode")

// FilterMode sets how strictly feature keywords must match a selection.
type FilterMode int

const (
	FilterNone    FilterMode = iota // features never exclude a variant
	FilterPartial                   // at least one selected feature present
	FilterExact                     // selected features equal the variant's
)

// DefaultFilterMode is used when no mode is given.
const DefaultFilterMode = FilterPartial

func (m FilterMode) String() string {
	switch m {
	case FilterNone:
		return "none"
	case FilterExact:
		return "exact"
	default:
		return "partial"
	}
}

// ParseFilterMode accepts "none", "partial" or "exact" in any case. The
// empty string yields DefaultFilterMode.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultFilterMode, nil
	case "none":
		return FilterNone, nil
	case "partial":
		return FilterPartial, nil
	case "exact":
		return FilterExact, nil
	}
	return 0, errors.Wrapf(ErrBadFilterMode, "%q", s)
}

// Filter is the variant predicate for one pass and one selection.
type Filter struct {
	multi      map[string]bool
	feature    map[string]bool
	effMulti   map[string]bool
	effFeature map[string]bool
	mode       FilterMode
}

// NewFilter builds the predicate for partition p and selection sel.
func NewFilter(p Partition, sel []string, mode FilterMode) *Filter {
	f := &Filter{
		multi:   p.Multi(),
		feature: p.FeatureSet(),
		mode:    mode,
	}
	f.effMulti = intersect(sel, f.multi)
	f.effFeature = intersect(sel, f.feature)
	return f
}

// Match reports whether v is selected. Multi keywords must match the
// selection exactly. Feature keywords are checked per mode, and only when
// the selection names at least one of them.
func (f *Filter) Match(v Variant) bool {
	if !equal(intersect(v.Keywords, f.multi), f.effMulti) {
		return false
	}
	if len(f.effFeature) == 0 {
		return true
	}
	progFeature := intersect(v.Keywords, f.feature)
	switch f.mode {
	case FilterNone:
		return true
	case FilterExact:
		return equal(progFeature, f.effFeature)
	default:
		for k := range progFeature {
			if f.effFeature[k] {
				return true
			}
		}
		return false
	}
}

// Select returns the positions in order whose variants pass the filter. An
// empty selection selects everything. When nothing matches, every position
// is returned and fellBack is true.
func Select(vs []Variant, order []int, p Partition, sel []string, mode FilterMode) (selected []int, fellBack bool) {
	if len(sel) == 0 {
		return append([]int(nil), order...), false
	}
	f := NewFilter(p, sel, mode)
	for _, i := range order {
		if f.Match(vs[i]) {
			selected = append(selected, i)
		}
	}
	if len(selected) == 0 {
		return append([]int(nil), order...), len(order) > 0
	}
	return selected, false
}

func intersect(list []string, set map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, k := range list {
		if set[k] {
			out[k] = true
		}
	}
	return out
}

func equal(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
