// Package extract selects a platform's compressed segments from a compiled
// shader object and decompresses them into a blob store.
package extract

import (
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"unshader/internal/assetfield"
	"unshader/internal/blob"
	"unshader/internal/engine"
	"unshader/internal/shaderfmt"
)

// Segment is one compressed segment of a platform slot.
type Segment struct {
	Offset             uint32 `json:"offset"`
	CompressedLength   uint32 `json:"compressed_length"`
	DecompressedLength uint32 `json:"decompressed_length"`
}

// Slot is one platform's entry in the compiled object's parallel arrays.
type Slot struct {
	Platform engine.Platform `json:"platform"`
	Segments []Segment       `json:"segments"`
}

// Container is the platform table plus the combined compressed blob.
type Container struct {
	Slots []Slot
	Blob  []byte
}

// ReadContainer reads the four parallel per-platform arrays and the
// compressed blob from the compiled object:
//
//	platforms.Array                   []int32
//	offsets.Array[i].Array            []uint32
//	compressedLengths.Array[i].Array  []uint32
//	decompressedLengths.Array[i].Array []uint32
//	compressedBlob.Array              []uint8
func ReadContainer(obj assetfield.Field) (*Container, error) {
	platforms := obj.Get("platforms.Array").Array()
	offsets := nested(obj.Get("offsets.Array"))
	clens := nested(obj.Get("compressedLengths.Array"))
	dlens := nested(obj.Get("decompressedLengths.Array"))

	if len(offsets) != len(platforms) || len(clens) != len(platforms) || len(dlens) != len(platforms) {
		return nil, errors.Wrapf(shaderfmt.ErrCorruptData,
			"extract: %d platforms, %d offset lists, %d compressed length lists, %d decompressed length lists",
			len(platforms), len(offsets), len(clens), len(dlens))
	}

	c := &Container{Slots: make([]Slot, len(platforms))}
	for i, p := range platforms {
		n := len(offsets[i])
		if len(clens[i]) != n || len(dlens[i]) != n {
			return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "extract: slot %d: segment lists disagree (%d/%d/%d)",
				i, n, len(clens[i]), len(dlens[i]))
		}
		slot := Slot{Platform: engine.Platform(p.Int()), Segments: make([]Segment, n)}
		for j := 0; j < n; j++ {
			slot.Segments[j] = Segment{Offset: offsets[i][j], CompressedLength: clens[i][j], DecompressedLength: dlens[i][j]}
		}
		c.Slots[i] = slot
	}

	b, err := obj.Get("compressedBlob.Array").Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "extract: compressedBlob")
	}
	c.Blob = b
	return c, nil
}

func nested(f assetfield.Field) [][]uint32 {
	var out [][]uint32
	for _, inner := range f.Array() {
		items := inner.Get("Array").Array()
		list := make([]uint32, len(items))
		for j, v := range items {
			list[j] = uint32(v.Uint())
		}
		out = append(out, list)
	}
	return out
}

// Platforms lists the platforms present, in slot order.
func (c *Container) Platforms() []engine.Platform {
	out := make([]engine.Platform, len(c.Slots))
	for i, s := range c.Slots {
		out[i] = s.Platform
	}
	return out
}

// Slot returns the slot for platform p.
func (c *Container) Slot(p engine.Platform) (*Slot, error) {
	for i := range c.Slots {
		if c.Slots[i].Platform == p {
			return &c.Slots[i], nil
		}
	}
	return nil, errors.Wrapf(shaderfmt.ErrPlatformNotFound, "extract: %s (have %v)", p, c.Platforms())
}

// Decompress inflates every segment of slot in order. Any failure aborts
// the whole slot.
func (c *Container) Decompress(slot *Slot) ([][]byte, error) {
	segs := make([][]byte, 0, len(slot.Segments))
	for i, s := range slot.Segments {
		end := uint64(s.Offset) + uint64(s.CompressedLength)
		if end > uint64(len(c.Blob)) {
			return nil, errors.Wrapf(shaderfmt.ErrCorruptData, "extract: %s segment %d: [0x%x, 0x%x) past blob size 0x%x",
				slot.Platform, i, s.Offset, end, len(c.Blob))
		}
		out := make([]byte, s.DecompressedLength)
		if s.DecompressedLength > 0 {
			n, err := lz4.UncompressBlock(c.Blob[s.Offset:end], out)
			if err != nil {
				return nil, errors.Wrapf(shaderfmt.ErrDecompress, "extract: %s segment %d: %v", slot.Platform, i, err)
			}
			if n != len(out) {
				return nil, errors.Wrapf(shaderfmt.ErrDecompress, "extract: %s segment %d: got %d bytes, want %d",
					slot.Platform, i, n, len(out))
			}
		}
		segs = append(segs, out)
	}
	return segs, nil
}

// Extract selects platform p from obj, decompresses its segments and
// builds the blob store for engine version v.
func Extract(obj assetfield.Field, p engine.Platform, v engine.Version) (*blob.Store, error) {
	c, err := ReadContainer(obj)
	if err != nil {
		return nil, err
	}
	slot, err := c.Slot(p)
	if err != nil {
		return nil, err
	}
	segs, err := c.Decompress(slot)
	if err != nil {
		return nil, err
	}
	return blob.NewStore(segs, v)
}
