package blob

import (
	"github.com/pkg/errors"

	"unshader/internal/engine"
	"unshader/internal/shaderfmt"
)

// Entry locates one record inside a decompressed segment.
type Entry struct {
	Segment int `json:"segment"`
	Offset  int `json:"offset"`
	Length  int `json:"length"`
}

// Store owns the decompressed segments of one platform and the entry table
// read from the start of the first segment.
type Store struct {
	layout   *Layout
	version  engine.Version
	segments [][]byte
	entries  []Entry
}

// NewStore parses the entry table at offset 0 of segments[0]:
//
//	+0x00: count  int32
//	+0x04: count records, field order and width per Layout.Entry
func NewStore(segments [][]byte, version engine.Version) (*Store, error) {
	if len(segments) == 0 {
		return nil, errors.Wrap(shaderfmt.ErrCorruptData, "blob: no segments")
	}
	layout := LayoutFor(version)
	s := shaderfmt.NewStream(segments[0])

	count, err := s.ReadCount(layout.EntrySize())
	if err != nil {
		return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "blob: entry count: %v", err)
	}
	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		var e Entry
		for _, f := range layout.Entry {
			v, err := s.ReadUint32()
			if err != nil {
				return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "blob: entry %d: %v", i, err)
			}
			switch f {
			case FieldOffset:
				e.Offset = int(v)
			case FieldLength:
				e.Length = int(v)
			case FieldSegment:
				e.Segment = int(v)
			}
		}
		entries = append(entries, e)
	}

	return &Store{
		layout:   layout,
		version:  version,
		segments: segments,
		entries:  entries,
	}, nil
}

// Layout returns the layout selected for the store's engine version.
func (st *Store) Layout() *Layout { return st.layout }

// Version returns the engine version the store was built for.
func (st *Store) Version() engine.Version { return st.version }

// Len returns the number of entries.
func (st *Store) Len() int { return len(st.entries) }

// Entries returns the parsed entry table.
func (st *Store) Entries() []Entry { return st.entries }

// Segments returns the number of decompressed segments.
func (st *Store) Segments() int { return len(st.segments) }

// SegmentSize returns the decompressed length of segment i.
func (st *Store) SegmentSize(i int) int {
	if i < 0 || i >= len(st.segments) {
		return 0
	}
	return len(st.segments[i])
}

// Read returns the bytes of entry index. The result is a copy.
func (st *Store) Read(index int) ([]byte, error) {
	if index < 0 || index >= len(st.entries) {
		return nil, errors.Wrapf(shaderfmt.ErrOutOfRange, "blob: entry %d of %d", index, len(st.entries))
	}
	e := st.entries[index]
	if e.Segment < 0 || e.Segment >= len(st.segments) {
		return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "blob: entry %d: segment %d of %d", index, e.Segment, len(st.segments))
	}
	seg := st.segments[e.Segment]
	end := uint64(e.Offset) + uint64(e.Length)
	if end > uint64(len(seg)) {
		return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "blob: entry %d: range [0x%x, 0x%x) exceeds segment %d size 0x%x",
			index, e.Offset, end, e.Segment, len(seg))
	}
	out := make([]byte, e.Length)
	copy(out, seg[e.Offset:end])
	return out, nil
}

// ReadShaderParams parses entry index as a parameter block.
func (st *Store) ReadShaderParams(index int) (*ShaderParams, error) {
	data, err := st.Read(index)
	if err != nil {
		return nil, err
	}
	p, err := readShaderParams(shaderfmt.NewStream(data), st.layout)
	if err != nil {
		return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "blob: params %d: %v", index, err)
	}
	return p, nil
}

// ReadSubProgram parses entry index as a GPU sub-program.
func (st *Store) ReadSubProgram(index int) (*SubProgram, error) {
	data, err := st.Read(index)
	if err != nil {
		return nil, err
	}
	p, err := readSubProgram(shaderfmt.NewStream(data), st.layout)
	if err != nil {
		return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "blob: sub-program %d: %v", index, err)
	}
	return p, nil
}
