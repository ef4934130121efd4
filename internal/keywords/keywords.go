// Package keywords regroups keyword-tagged program variants into pragma
// declarations and preprocessor blocks, and filters variants against a
// keyword selection.
package keywords

import (
	"sort"
	"strings"

	"unshader/internal/engine"
)

// Variant is the part of a program variant the engine looks at.
type Variant struct {
	Type     engine.ProgramType `json:"type"`
	Keywords []string           `json:"keywords"` // global then local
}

// Sorted returns the variant's keywords in ordinal order.
func (v Variant) Sorted() []string {
	out := append([]string(nil), v.Keywords...)
	sort.Strings(out)
	return out
}

// Signature joins the sorted keywords with "-". Variants with the same
// keyword set share a signature.
func (v Variant) Signature() string { return strings.Join(v.Sorted(), "-") }

// Condition is the preprocessor condition selecting v: its sorted keywords
// joined with " && ". A variant without keywords gets "1".
func (v Variant) Condition() string {
	if len(v.Keywords) == 0 {
		return "1"
	}
	return strings.Join(v.Sorted(), " && ")
}

// Order returns the canonical processing order of vs as indices: by program
// type, then by descending keyword count. Ties keep input order.
func Order(vs []Variant) []int {
	idx := make([]int, len(vs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := vs[idx[a]], vs[idx[b]]
		if va.Type != vb.Type {
			return va.Type < vb.Type
		}
		return len(va.Keywords) > len(vb.Keywords)
	})
	return idx
}

// Partition splits the keywords of one pass into pragma sets.
type Partition struct {
	// Mandatory keywords appear in every variant.
	Mandatory []string `json:"mandatory"`
	// Groups are pick-one-of sets recovered from the smallest variants.
	Groups [][]string `json:"groups,omitempty"`
	// Features are the remaining optional keywords.
	Features []string `json:"features"`
}

// NewPartition computes the partition of vs, which should be in canonical
// order. Keywords keep the order of their first appearance.
//
// Groups are built column-wise from the variants with the fewest keywords
// after mandatory ones are removed. This assumes those variants line up
// position by position once sorted; when they do not, unrelated keywords
// can share a group.
func NewPartition(vs []Variant) Partition {
	var p Partition
	if len(vs) == 0 {
		return p
	}

	combos := make([][]string, len(vs))
	var unique []string
	seen := make(map[string]bool)
	least := -1
	for i, v := range vs {
		combos[i] = dedup(v.Sorted())
		for _, k := range combos[i] {
			if !seen[k] {
				seen[k] = true
				unique = append(unique, k)
			}
		}
		if least < 0 || len(combos[i]) < least {
			least = len(combos[i])
		}
	}

	mandatory := make(map[string]bool)
	for _, k := range unique {
		inAll := true
		for _, c := range combos {
			if !contains(c, k) {
				inAll = false
				break
			}
		}
		if inAll {
			mandatory[k] = true
			p.Mandatory = append(p.Mandatory, k)
		}
	}

	grouped := make(map[string]bool)
	if least > len(p.Mandatory) {
		var reduced [][]string
		for _, c := range combos {
			if len(c) != least {
				continue
			}
			var r []string
			for _, k := range c {
				if !mandatory[k] {
					r = append(r, k)
				}
			}
			reduced = append(reduced, r)
		}
		for col := 0; col < least-len(p.Mandatory); col++ {
			var g []string
			for _, r := range reduced {
				if !contains(g, r[col]) {
					g = append(g, r[col])
				}
				grouped[r[col]] = true
			}
			p.Groups = append(p.Groups, g)
		}
	}

	for _, k := range unique {
		if !mandatory[k] && !grouped[k] {
			p.Features = append(p.Features, k)
		}
	}
	return p
}

// Multi returns the exact-match keyword set: mandatory plus grouped.
func (p Partition) Multi() map[string]bool {
	m := make(map[string]bool)
	for _, k := range p.Mandatory {
		m[k] = true
	}
	for _, g := range p.Groups {
		for _, k := range g {
			m[k] = true
		}
	}
	return m
}

// FeatureSet returns the optional keywords as a set.
func (p Partition) FeatureSet() map[string]bool {
	m := make(map[string]bool, len(p.Features))
	for _, k := range p.Features {
		m[k] = true
	}
	return m
}

// Pragmas renders the partition as pragma lines: one multi_compile per
// mandatory keyword, one per group, one shader_feature per feature.
func (p Partition) Pragmas() []string {
	var out []string
	for _, k := range p.Mandatory {
		out = append(out, "#pragma multi_compile "+k)
	}
	for _, g := range p.Groups {
		out = append(out, "#pragma multi_compile "+strings.Join(g, " "))
	}
	for _, k := range p.Features {
		out = append(out, "#pragma shader_feature "+k)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// dedup removes adjacent duplicates from a sorted list.
func dedup(sorted []string) []string {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
