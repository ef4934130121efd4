package shaderlab

import (
	"unshader/internal/assetfield"
	"unshader/internal/blob"
)

// readParams reads a serialized parameter set (m_CommonParameters). Names
// are left empty; they are resolved later through the pass name table.
func readParams(f assetfield.Field) *blob.ShaderParams {
	p := &blob.ShaderParams{
		Vectors:  readVectorParams(f.Get("m_VectorParams.Array")),
		Matrices: readMatrixParams(f.Get("m_MatrixParams.Array")),
	}
	for _, t := range f.Get("m_TextureParams.Array").Array() {
		p.Textures = append(p.Textures, blob.TextureParam{
			NameIndex:    int32(t.Get("m_NameIndex").Int()),
			Index:        int32(t.Get("m_Index").Int()),
			SamplerIndex: int32(t.Get("m_SamplerIndex").Int()),
			MultiSampled: t.Get("m_MultiSampled").Bool(),
			Dim:          int8(t.Get("m_Dim").Int()),
		})
	}
	p.Buffers = readBufferParams(f.Get("m_BufferParams.Array"))
	for _, c := range f.Get("m_ConstantBuffers.Array").Array() {
		p.ConstantBuffers = append(p.ConstantBuffers, blob.ConstantBuffer{
			NameIndex: int32(c.Get("m_NameIndex").Int()),
			Matrices:  readMatrixParams(c.Get("m_MatrixParams.Array")),
			Vectors:   readVectorParams(c.Get("m_VectorParams.Array")),
			Size:      int32(c.Get("m_Size").Int()),
			Partial:   c.Get("m_IsPartialCB").Bool(),
		})
	}
	p.CBBindings = readBufferParams(f.Get("m_ConstantBufferBindings.Array"))
	for _, u := range f.Get("m_UAVParams.Array").Array() {
		p.UAVs = append(p.UAVs, blob.UAVParam{
			NameIndex:     int32(u.Get("m_NameIndex").Int()),
			Index:         int32(u.Get("m_Index").Int()),
			OriginalIndex: int32(u.Get("m_OriginalIndex").Int()),
		})
	}
	for _, s := range f.Get("m_Samplers.Array").Array() {
		p.Samplers = append(p.Samplers, blob.SamplerParam{
			Sampler:   uint32(s.Get("sampler").Uint()),
			BindPoint: int32(s.Get("bindPoint").Int()),
		})
	}
	return p
}

func readVectorParams(f assetfield.Field) []blob.VectorParam {
	var out []blob.VectorParam
	for _, v := range f.Array() {
		out = append(out, blob.VectorParam{
			NameIndex: int32(v.Get("m_NameIndex").Int()),
			Index:     int32(v.Get("m_Index").Int()),
			ArraySize: int32(v.Get("m_ArraySize").Int()),
			Type:      blob.ParamType(v.Get("m_Type").Int()),
			Dim:       int8(v.Get("m_Dim").Int()),
		})
	}
	return out
}

func readMatrixParams(f assetfield.Field) []blob.MatrixParam {
	var out []blob.MatrixParam
	for _, m := range f.Array() {
		rows := int8(m.Get("m_RowCount").Int())
		cols := rows
		if c := m.Get("m_ColumnCount"); c.Exists() {
			cols = int8(c.Int())
		}
		out = append(out, blob.MatrixParam{
			NameIndex:   int32(m.Get("m_NameIndex").Int()),
			Index:       int32(m.Get("m_Index").Int()),
			ArraySize:   int32(m.Get("m_ArraySize").Int()),
			Type:        blob.ParamType(m.Get("m_Type").Int()),
			RowCount:    rows,
			ColumnCount: cols,
		})
	}
	return out
}

func readBufferParams(f assetfield.Field) []blob.BufferParam {
	var out []blob.BufferParam
	for _, b := range f.Array() {
		out = append(out, blob.BufferParam{
			NameIndex: int32(b.Get("m_NameIndex").Int()),
			Index:     int32(b.Get("m_Index").Int()),
			ArraySize: int32(b.Get("m_ArraySize").Int()),
		})
	}
	return out
}
