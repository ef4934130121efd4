// Package blob parses the segmented blob container of a compiled shader and
// serves its records: GPU sub-programs and parameter blocks.
package blob

import "unshader/internal/engine"

// EntryField is one 32-bit field of an entry-table record.
type EntryField int

const (
	FieldOffset EntryField = iota
	FieldLength
	FieldSegment
)

// Layout holds the per-version shape of every binary structure in the
// container. One layout is selected at construction; parsers consult its
// flags instead of comparing versions.
type Layout struct {
	Name       string
	MinVersion engine.Version

	// Entry lists the record fields in on-disk order, 4 bytes each.
	Entry []EntryField

	// Sub-program header.
	LocalKeywords bool // global keywords are followed by local keywords

	// Parameter block.
	MultiSampled    bool // texture params carry a multi-sampled flag
	Samplers        bool // trailing sampler table
	BufferArraySize bool // buffer and cbuffer bindings carry an array size
	PartialCB       bool // constant buffers carry an is-partial flag
}

// EntrySize is the encoded size of one entry-table record.
func (l *Layout) EntrySize() int { return 4 * len(l.Entry) }

// Layouts, newest first.
var layouts = []*Layout{
	{
		Name:            "2021.2",
		MinVersion:      engine.V(2021, 2, 0),
		Entry:           []EntryField{FieldOffset, FieldLength, FieldSegment},
		LocalKeywords:   true,
		MultiSampled:    true,
		Samplers:        true,
		BufferArraySize: true,
		PartialCB:       true,
	},
	{
		Name:          "2019.3",
		MinVersion:    engine.V(2019, 3, 0),
		Entry:         []EntryField{FieldOffset, FieldLength, FieldSegment},
		LocalKeywords: true,
		MultiSampled:  true,
		Samplers:      true,
	},
	{
		Name:         "2017.3",
		MinVersion:   engine.V(2017, 3, 0),
		Entry:        []EntryField{FieldOffset, FieldLength},
		MultiSampled: true,
		Samplers:     true,
	},
	{
		Name:       "5.5",
		MinVersion: engine.V(5, 5, 0),
		Entry:      []EntryField{FieldOffset, FieldLength},
	},
}

// LayoutFor selects the layout for an engine version. Versions older than
// every known layout get the oldest one.
func LayoutFor(v engine.Version) *Layout {
	for _, l := range layouts {
		if v.AtLeast(l.MinVersion) {
			return l
		}
	}
	return layouts[len(layouts)-1]
}
