// Package blobtest encodes blob containers for tests.
package blobtest

import (
	"encoding/binary"

	"unshader/internal/blob"
)

// Buffer is an append-only little-endian encoder.
type Buffer struct {
	b []byte
}

func (w *Buffer) Bytes() []byte { return w.b }
func (w *Buffer) Len() int      { return len(w.b) }

func (w *Buffer) U8(v byte)   { w.b = append(w.b, v) }
func (w *Buffer) I32(v int32) { w.U32(uint32(v)) }

func (w *Buffer) U32(v uint32) {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
}

func (w *Buffer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

func (w *Buffer) Align() {
	for len(w.b)%4 != 0 {
		w.b = append(w.b, 0)
	}
}

func (w *Buffer) Raw(b []byte) { w.b = append(w.b, b...) }

func (w *Buffer) ByteArray(b []byte) {
	w.I32(int32(len(b)))
	w.b = append(w.b, b...)
	w.Align()
}

func (w *Buffer) String(s string) { w.ByteArray([]byte(s)) }

func (w *Buffer) Strings(ss []string) {
	w.I32(int32(len(ss)))
	for _, s := range ss {
		w.String(s)
	}
}

// Params encodes p for layout l.
func Params(p *blob.ShaderParams, l *blob.Layout) []byte {
	var w Buffer
	writeParams(&w, p, l)
	return w.Bytes()
}

// SubProgram encodes p for layout l.
func SubProgram(p *blob.SubProgram, l *blob.Layout) []byte {
	var w Buffer
	w.I32(p.FormatVersion)
	w.I32(int32(p.Type))
	for _, s := range p.Stats {
		w.I32(s)
	}
	w.Strings(p.GlobalKeywords)
	if l.LocalKeywords {
		w.Strings(p.LocalKeywords)
	}
	w.ByteArray(p.Program)
	writeParams(&w, &p.Params, l)
	return w.Bytes()
}

func writeParams(w *Buffer, p *blob.ShaderParams, l *blob.Layout) {
	writeVectors(w, p.Vectors)
	writeMatrices(w, p.Matrices)
	w.I32(int32(len(p.Textures)))
	for _, t := range p.Textures {
		w.String(t.Name)
		w.I32(t.NameIndex)
		w.I32(t.Index)
		w.I32(t.SamplerIndex)
		if l.MultiSampled {
			w.Bool(t.MultiSampled)
		}
		w.U8(byte(t.Dim))
		w.Align()
	}
	writeBuffers(w, p.Buffers, l)
	w.I32(int32(len(p.ConstantBuffers)))
	for _, cb := range p.ConstantBuffers {
		w.String(cb.Name)
		w.I32(cb.NameIndex)
		writeMatrices(w, cb.Matrices)
		writeVectors(w, cb.Vectors)
		w.I32(cb.Size)
		if l.PartialCB {
			w.Bool(cb.Partial)
			w.Align()
		}
	}
	writeBuffers(w, p.CBBindings, l)
	w.I32(int32(len(p.UAVs)))
	for _, u := range p.UAVs {
		w.String(u.Name)
		w.I32(u.NameIndex)
		w.I32(u.Index)
		w.I32(u.OriginalIndex)
	}
	if l.Samplers {
		w.I32(int32(len(p.Samplers)))
		for _, s := range p.Samplers {
			w.U32(s.Sampler)
			w.I32(s.BindPoint)
		}
	}
}

func writeVectors(w *Buffer, vs []blob.VectorParam) {
	w.I32(int32(len(vs)))
	for _, v := range vs {
		w.String(v.Name)
		w.I32(v.NameIndex)
		w.I32(v.Index)
		w.I32(v.ArraySize)
		w.I32(int32(v.Type))
		w.U8(byte(v.Dim))
		w.Align()
	}
}

func writeMatrices(w *Buffer, ms []blob.MatrixParam) {
	w.I32(int32(len(ms)))
	for _, m := range ms {
		w.String(m.Name)
		w.I32(m.NameIndex)
		w.I32(m.Index)
		w.I32(m.ArraySize)
		w.I32(int32(m.Type))
		w.U8(byte(m.RowCount))
		w.U8(byte(m.ColumnCount))
		w.Align()
	}
}

func writeBuffers(w *Buffer, bs []blob.BufferParam, l *blob.Layout) {
	w.I32(int32(len(bs)))
	for _, b := range bs {
		w.String(b.Name)
		w.I32(b.NameIndex)
		w.I32(b.Index)
		if l.BufferArraySize {
			w.I32(b.ArraySize)
		}
	}
}

// Container lays out records into segments behind an entry table.
type Container struct {
	layout   *blob.Layout
	segments [][]byte
	entries  []blob.Entry
}

// NewContainer starts a container with nsegments segments (at least one).
func NewContainer(l *blob.Layout, nsegments int) *Container {
	if nsegments < 1 {
		nsegments = 1
	}
	return &Container{layout: l, segments: make([][]byte, nsegments)}
}

// Add appends record to segment seg and returns its entry index. Layouts
// without a segment field only address segment 0.
func (c *Container) Add(seg int, record []byte) int {
	c.entries = append(c.entries, blob.Entry{Segment: seg, Offset: len(c.segments[seg]), Length: len(record)})
	c.segments[seg] = append(c.segments[seg], record...)
	return len(c.entries) - 1
}

// AddEntry appends a raw entry, for corrupt-table tests.
func (c *Container) AddEntry(e blob.Entry) int {
	c.entries = append(c.entries, e)
	return len(c.entries) - 1
}

// Segments returns the encoded segments. The entry table is prepended to
// segment 0 and every offset into segment 0 is shifted past it.
func (c *Container) Segments() [][]byte {
	tableSize := 4 + len(c.entries)*c.layout.EntrySize()
	var w Buffer
	w.I32(int32(len(c.entries)))
	for _, e := range c.entries {
		off := e.Offset
		if e.Segment == 0 {
			off += tableSize
		}
		for _, f := range c.layout.Entry {
			switch f {
			case blob.FieldOffset:
				w.U32(uint32(off))
			case blob.FieldLength:
				w.U32(uint32(e.Length))
			case blob.FieldSegment:
				w.U32(uint32(e.Segment))
			}
		}
	}
	out := make([][]byte, len(c.segments))
	out[0] = append(w.Bytes(), c.segments[0]...)
	for i := 1; i < len(c.segments); i++ {
		out[i] = append([]byte(nil), c.segments[i]...)
	}
	return out
}
