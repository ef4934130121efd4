package blob

import (
	"sort"
	"strconv"

	"unshader/internal/shaderfmt"
)

// ParamType is the scalar base type of a vector or matrix parameter.
type ParamType int32

const (
	ParamFloat ParamType = 0
	ParamInt   ParamType = 1
	ParamBool  ParamType = 2
	ParamHalf  ParamType = 3
	ParamShort ParamType = 4
	ParamUInt  ParamType = 5
)

func (t ParamType) String() string {
	switch t {
	case ParamInt:
		return "int"
	case ParamBool:
		return "bool"
	case ParamHalf:
		return "half"
	case ParamShort:
		return "short"
	case ParamUInt:
		return "uint"
	default:
		return "float"
	}
}

type VectorParam struct {
	Name      string    `json:"name"`
	NameIndex int32     `json:"name_index"`
	Index     int32     `json:"index"`
	ArraySize int32     `json:"array_size"`
	Type      ParamType `json:"type"`
	Dim       int8      `json:"dim"`
}

type MatrixParam struct {
	Name        string    `json:"name"`
	NameIndex   int32     `json:"name_index"`
	Index       int32     `json:"index"`
	ArraySize   int32     `json:"array_size"`
	Type        ParamType `json:"type"`
	RowCount    int8      `json:"rows"`
	ColumnCount int8      `json:"columns"`
}

type TextureParam struct {
	Name         string `json:"name"`
	NameIndex    int32  `json:"name_index"`
	Index        int32  `json:"index"`
	SamplerIndex int32  `json:"sampler_index"`
	MultiSampled bool   `json:"multi_sampled"`
	Dim          int8   `json:"dim"`
}

// BufferParam describes a structured buffer or a constant-buffer binding.
type BufferParam struct {
	Name      string `json:"name"`
	NameIndex int32  `json:"name_index"`
	Index     int32  `json:"index"`
	ArraySize int32  `json:"array_size"`
}

type UAVParam struct {
	Name          string `json:"name"`
	NameIndex     int32  `json:"name_index"`
	Index         int32  `json:"index"`
	OriginalIndex int32  `json:"original_index"`
}

type SamplerParam struct {
	Sampler   uint32 `json:"sampler"`
	BindPoint int32  `json:"bind_point"`
}

type ConstantBuffer struct {
	Name      string        `json:"name"`
	NameIndex int32         `json:"name_index"`
	Matrices  []MatrixParam `json:"matrices"`
	Vectors   []VectorParam `json:"vectors"`
	Size      int32         `json:"size"`
	Partial   bool          `json:"partial"`
}

// GlobalsBuffer is the name of the implicit constant buffer holding loose uniforms.
const GlobalsBuffer = "$Globals"

// CBMember is one member of a constant buffer, vector or matrix alike.
type CBMember struct {
	Name      string
	Type      ParamType
	Index     int32 // byte offset inside the buffer
	ArraySize int32
	Rows      int
	Columns   int
	IsMatrix  bool
}

// TypeName returns the HLSL type of m ("float4", "float4x4", "int").
func (m CBMember) TypeName() string {
	base := m.Type.String()
	switch {
	case m.IsMatrix:
		return base + strconv.Itoa(m.Rows) + "x" + strconv.Itoa(m.Columns)
	case m.Columns > 1:
		return base + strconv.Itoa(m.Columns)
	default:
		return base
	}
}

// Members flattens cb into members ordered by offset.
func (cb *ConstantBuffer) Members() []CBMember {
	out := make([]CBMember, 0, len(cb.Matrices)+len(cb.Vectors))
	for _, m := range cb.Matrices {
		cols := int(m.ColumnCount)
		if cols == 0 {
			cols = 4
		}
		out = append(out, CBMember{
			Name: m.Name, Type: m.Type, Index: m.Index, ArraySize: m.ArraySize,
			Rows: int(m.RowCount), Columns: cols, IsMatrix: true,
		})
	}
	for _, v := range cb.Vectors {
		out = append(out, CBMember{
			Name: v.Name, Type: v.Type, Index: v.Index, ArraySize: v.ArraySize,
			Rows: 1, Columns: int(v.Dim),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ShaderParams is the resource interface of one sub-program.
type ShaderParams struct {
	Vectors         []VectorParam    `json:"vectors"`
	Matrices        []MatrixParam    `json:"matrices"`
	Textures        []TextureParam   `json:"textures"`
	Buffers         []BufferParam    `json:"buffers"`
	ConstantBuffers []ConstantBuffer `json:"constant_buffers"`
	CBBindings      []BufferParam    `json:"cb_bindings"`
	UAVs            []UAVParam       `json:"uavs"`
	Samplers        []SamplerParam   `json:"samplers"`
}

// CombineCommon merges program-level parameters shared by every
// sub-program. Entries already present by name are kept as they are.
func (p *ShaderParams) CombineCommon(common *ShaderParams) {
	if common == nil {
		return
	}
	p.Vectors = mergeByName(p.Vectors, common.Vectors, func(v VectorParam) string { return v.Name })
	p.Matrices = mergeByName(p.Matrices, common.Matrices, func(m MatrixParam) string { return m.Name })
	p.Textures = mergeByName(p.Textures, common.Textures, func(t TextureParam) string { return t.Name })
	p.Buffers = mergeByName(p.Buffers, common.Buffers, func(b BufferParam) string { return b.Name })
	p.ConstantBuffers = mergeByName(p.ConstantBuffers, common.ConstantBuffers, func(c ConstantBuffer) string { return c.Name })
	p.CBBindings = mergeByName(p.CBBindings, common.CBBindings, func(b BufferParam) string { return b.Name })
	p.UAVs = mergeByName(p.UAVs, common.UAVs, func(u UAVParam) string { return u.Name })
	if len(p.Samplers) == 0 {
		p.Samplers = append(p.Samplers, common.Samplers...)
	}
}

func mergeByName[T any](dst, src []T, name func(T) string) []T {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]bool, len(dst))
	for _, d := range dst {
		seen[name(d)] = true
	}
	for _, s := range src {
		if n := name(s); n == "" || !seen[n] {
			seen[n] = true
			dst = append(dst, s)
		}
	}
	return dst
}

// ResolveNames fills empty parameter names from the pass name table.
// Indices missing from the table are reported to sink and left empty.
func (p *ShaderParams) ResolveNames(table map[int]string, sink shaderfmt.Sink) {
	resolve := func(name *string, idx int32) {
		if *name != "" || idx < 0 {
			return
		}
		if n, ok := table[int(idx)]; ok {
			*name = n
			return
		}
		sink.Addf(-1, shaderfmt.DiagUnresolved, "name index %d not in name table", idx)
	}
	for i := range p.Vectors {
		resolve(&p.Vectors[i].Name, p.Vectors[i].NameIndex)
	}
	for i := range p.Matrices {
		resolve(&p.Matrices[i].Name, p.Matrices[i].NameIndex)
	}
	for i := range p.Textures {
		resolve(&p.Textures[i].Name, p.Textures[i].NameIndex)
	}
	for i := range p.Buffers {
		resolve(&p.Buffers[i].Name, p.Buffers[i].NameIndex)
	}
	for i := range p.ConstantBuffers {
		cb := &p.ConstantBuffers[i]
		resolve(&cb.Name, cb.NameIndex)
		for j := range cb.Vectors {
			resolve(&cb.Vectors[j].Name, cb.Vectors[j].NameIndex)
		}
		for j := range cb.Matrices {
			resolve(&cb.Matrices[j].Name, cb.Matrices[j].NameIndex)
		}
	}
	for i := range p.CBBindings {
		resolve(&p.CBBindings[i].Name, p.CBBindings[i].NameIndex)
	}
	for i := range p.UAVs {
		resolve(&p.UAVs[i].Name, p.UAVs[i].NameIndex)
	}
}

// Parameter block layout. Every list is an int32 count followed by records;
// every name is an aligned string followed by its int32 name index.
//
//	vectors:   name, nameIndex, index, arraySize, type, dim(int8, aligned)
//	matrices:  name, nameIndex, index, arraySize, type, rows(int8), cols(int8), aligned
//	textures:  name, nameIndex, index, samplerIndex, [multiSampled(bool)], dim(int8), aligned
//	buffers:   name, nameIndex, index, [arraySize]
//	cbuffers:  name, nameIndex, matrices, vectors, size, [partial(bool), aligned]
//	bindings:  name, nameIndex, index, [arraySize]
//	uavs:      name, nameIndex, index, originalIndex
//	[samplers: sampler(uint32), bindPoint]
func readShaderParams(s *shaderfmt.Stream, l *Layout) (*ShaderParams, error) {
	var p ShaderParams
	var err error

	if p.Vectors, err = readVectors(s); err != nil {
		return nil, err
	}
	if p.Matrices, err = readMatrices(s); err != nil {
		return nil, err
	}
	if p.Textures, err = readList(s, func() (TextureParam, error) { return readTexture(s, l) }); err != nil {
		return nil, err
	}
	if p.Buffers, err = readList(s, func() (BufferParam, error) { return readBuffer(s, l) }); err != nil {
		return nil, err
	}
	if p.ConstantBuffers, err = readList(s, func() (ConstantBuffer, error) { return readConstantBuffer(s, l) }); err != nil {
		return nil, err
	}
	if p.CBBindings, err = readList(s, func() (BufferParam, error) { return readBuffer(s, l) }); err != nil {
		return nil, err
	}
	if p.UAVs, err = readList(s, func() (UAVParam, error) { return readUAV(s) }); err != nil {
		return nil, err
	}
	if l.Samplers {
		if p.Samplers, err = readList(s, func() (SamplerParam, error) {
			var sp SamplerParam
			var err error
			if sp.Sampler, err = s.ReadUint32(); err != nil {
				return sp, err
			}
			sp.BindPoint, err = s.ReadInt32()
			return sp, err
		}); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// minRecord is the smallest possible encoded record: an empty name plus one int32.
const minRecord = 8

func readList[T any](s *shaderfmt.Stream, read func() (T, error)) ([]T, error) {
	n, err := s.ReadCount(minRecord)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := read()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readName(s *shaderfmt.Stream) (string, int32, error) {
	name, err := s.ReadAlignedString()
	if err != nil {
		return "", 0, err
	}
	idx, err := s.ReadInt32()
	return name, idx, err
}

// readInts reads consecutive int32 fields into dst.
func readInts(s *shaderfmt.Stream, dst ...*int32) error {
	for _, d := range dst {
		v, err := s.ReadInt32()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func readVectors(s *shaderfmt.Stream) ([]VectorParam, error) {
	return readList(s, func() (VectorParam, error) {
		var v VectorParam
		var err error
		if v.Name, v.NameIndex, err = readName(s); err != nil {
			return v, err
		}
		var typ int32
		if err = readInts(s, &v.Index, &v.ArraySize, &typ); err != nil {
			return v, err
		}
		v.Type = ParamType(typ)
		b, err := s.ReadByte()
		v.Dim = int8(b)
		s.Align(4)
		return v, err
	})
}

func readMatrices(s *shaderfmt.Stream) ([]MatrixParam, error) {
	return readList(s, func() (MatrixParam, error) {
		var m MatrixParam
		var err error
		if m.Name, m.NameIndex, err = readName(s); err != nil {
			return m, err
		}
		var typ int32
		if err = readInts(s, &m.Index, &m.ArraySize, &typ); err != nil {
			return m, err
		}
		m.Type = ParamType(typ)
		rc, err := s.ReadBytes(2)
		if err != nil {
			return m, err
		}
		m.RowCount, m.ColumnCount = int8(rc[0]), int8(rc[1])
		s.Align(4)
		return m, nil
	})
}

func readTexture(s *shaderfmt.Stream, l *Layout) (TextureParam, error) {
	var t TextureParam
	var err error
	if t.Name, t.NameIndex, err = readName(s); err != nil {
		return t, err
	}
	if err = readInts(s, &t.Index, &t.SamplerIndex); err != nil {
		return t, err
	}
	if l.MultiSampled {
		if t.MultiSampled, err = s.ReadBool(); err != nil {
			return t, err
		}
	}
	b, err := s.ReadByte()
	t.Dim = int8(b)
	s.Align(4)
	return t, err
}

func readBuffer(s *shaderfmt.Stream, l *Layout) (BufferParam, error) {
	var b BufferParam
	var err error
	if b.Name, b.NameIndex, err = readName(s); err != nil {
		return b, err
	}
	if err = readInts(s, &b.Index); err != nil {
		return b, err
	}
	if l.BufferArraySize {
		err = readInts(s, &b.ArraySize)
	}
	return b, err
}

func readConstantBuffer(s *shaderfmt.Stream, l *Layout) (ConstantBuffer, error) {
	var cb ConstantBuffer
	var err error
	if cb.Name, cb.NameIndex, err = readName(s); err != nil {
		return cb, err
	}
	if cb.Matrices, err = readMatrices(s); err != nil {
		return cb, err
	}
	if cb.Vectors, err = readVectors(s); err != nil {
		return cb, err
	}
	if err = readInts(s, &cb.Size); err != nil {
		return cb, err
	}
	if l.PartialCB {
		cb.Partial, err = s.ReadBool()
		s.Align(4)
	}
	return cb, err
}

func readUAV(s *shaderfmt.Stream) (UAVParam, error) {
	var u UAVParam
	var err error
	if u.Name, u.NameIndex, err = readName(s); err != nil {
		return u, err
	}
	err = readInts(s, &u.Index, &u.OriginalIndex)
	return u, err
}
