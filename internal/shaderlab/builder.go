package shaderlab

import (
	"strconv"

	"github.com/pkg/errors"

	"unshader/internal/assetfield"
	"unshader/internal/blob"
	"unshader/internal/engine"
	"unshader/internal/shaderfmt"
)

// Builder walks a compiled shader object into a Shader tree, attaching to
// every concrete pass the sub-programs of one platform.
type Builder struct {
	Store    *blob.Store
	Platform engine.Platform
	Sink     shaderfmt.Sink
	Mode     shaderfmt.Mode
}

// Build reads m_ParsedForm of obj.
func (b *Builder) Build(obj assetfield.Field) (*Shader, error) {
	if b.Sink == nil {
		b.Sink = shaderfmt.Discard
	}
	form := obj.Get("m_ParsedForm")
	if !form.Exists() {
		return nil, errors.Wrap(shaderfmt.ErrCorruptData, "shaderlab: no m_ParsedForm")
	}

	s := &Shader{
		Name:       form.Get("m_Name").String(),
		Properties: buildProperties(form.Get("m_PropInfo.m_Props.Array")),
		Fallback:   form.Get("m_FallbackName").String(),
	}
	for _, sf := range form.Get("m_SubShaders.Array").Array() {
		sub := SubShader{
			LOD:  int(sf.Get("m_LOD").Int()),
			Tags: buildTags(sf.Get("m_Tags")),
		}
		for _, pf := range sf.Get("m_Passes.Array").Array() {
			p, err := b.buildPass(pf)
			if err != nil {
				return nil, err
			}
			sub.Passes = append(sub.Passes, p)
		}
		s.SubShaders = append(s.SubShaders, sub)
	}
	return s, nil
}

func buildProperties(props assetfield.Field) []Property {
	var out []Property
	for _, pf := range props.Array() {
		p := Property{
			Flags:          PropertyFlag(pf.Get("m_Flags").Uint()),
			Name:           pf.Get("m_Name").String(),
			Description:    pf.Get("m_Description").String(),
			Type:           PropertyType(pf.Get("m_Type").Int()),
			DefaultTexture: pf.Get("m_DefTexture.m_DefaultName").String(),
			TextureDim:     int(pf.Get("m_DefTexture.m_TexDim").Int()),
		}
		for _, a := range pf.Get("m_Attributes.Array").Array() {
			p.Attributes = append(p.Attributes, a.String())
		}
		for i := range p.Default {
			p.Default[i] = float32(pf.Get("m_DefValue[" + strconv.Itoa(i) + "]").Float())
		}
		out = append(out, p)
	}
	return out
}

// buildTags reads a tag map stored as tags.Array of {first, second} pairs.
func buildTags(f assetfield.Field) []Tag {
	var out []Tag
	for _, t := range f.Get("tags.Array").Array() {
		out = append(out, Tag{Key: t.Get("first").String(), Value: t.Get("second").String()})
	}
	return out
}

func (b *Builder) buildPass(pf assetfield.Field) (Pass, error) {
	if use := pf.Get("m_UseName").String(); use != "" {
		return Pass{UsePass: use}, nil
	}
	p := Pass{State: buildPassState(pf.Get("m_State"))}

	names := make(map[int]string)
	for _, ni := range pf.Get("m_NameIndices.Array").Array() {
		names[int(ni.Get("second").Int())] = ni.Get("first").String()
	}

	for _, slot := range []struct {
		path  string
		types []engine.ProgramType
	}{
		{"progVertex", b.Platform.VertexTypes()},
		{"progFragment", b.Platform.FragmentTypes()},
	} {
		info := readProgramInfo(pf.Get(slot.path), names, b.Sink)
		for _, spi := range info.SubPrograms {
			if !hasType(slot.types, spi.Type) {
				continue
			}
			sp, err := b.subProgram(spi.BlobIndex)
			if err != nil && b.Mode == shaderfmt.ModeStrict {
				return Pass{}, err
			}
			p.Baskets = append(p.Baskets, Basket{Program: info, Info: spi, SubProgram: sp, Err: err})
		}
	}
	return p, nil
}

// subProgram parses the sub-program at index. Failures are reported to the
// sink and returned; the caller keeps an absent basket.
func (b *Builder) subProgram(index int) (*blob.SubProgram, error) {
	if b.Store == nil {
		return nil, errors.Wrap(shaderfmt.ErrOutOfRange, "shaderlab: no blob store")
	}
	sp, err := b.Store.ReadSubProgram(index)
	if err != nil {
		b.Sink.Addf(index, shaderfmt.DiagInvalid, "sub-program: %v", err)
		return nil, err
	}
	return sp, nil
}

func hasType(types []engine.ProgramType, t engine.ProgramType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// readProgramInfo reads one program slot. Newer engines list sub-programs
// in m_PlayerSubPrograms (one array per tier) with parallel
// m_ParameterBlobIndices; older ones use a flat m_SubPrograms. Sub-programs
// sharing a blob index are listed once. Common parameters are resolved
// against the name table here, once per slot.
func readProgramInfo(f assetfield.Field, names map[int]string, sink shaderfmt.Sink) *ProgramInfo {
	info := &ProgramInfo{Names: names}
	if cp := f.Get("m_CommonParameters"); cp.Exists() {
		info.Common = readParams(cp)
		info.Common.ResolveNames(names, sink)
	}

	seen := make(map[int]bool)
	add := func(sf assetfield.Field, paramIndex int) {
		spi := SubProgramInfo{
			BlobIndex:  int(sf.Get("m_BlobIndex").Int()),
			Type:       engine.ProgramType(sf.Get("m_GpuProgramType").Int()),
			Tier:       int(sf.Get("m_ShaderHardwareTier").Int()),
			ParamIndex: paramIndex,
		}
		if seen[spi.BlobIndex] {
			return
		}
		seen[spi.BlobIndex] = true
		info.SubPrograms = append(info.SubPrograms, spi)
	}

	if tiers := f.Get("m_PlayerSubPrograms.Array").Array(); len(tiers) > 0 {
		paramTiers := f.Get("m_ParameterBlobIndices.Array").Array()
		for t, tier := range tiers {
			var params []assetfield.Field
			if t < len(paramTiers) {
				params = paramTiers[t].Get("Array").Array()
			}
			for i, sf := range tier.Get("Array").Array() {
				pi := -1
				if i < len(params) {
					pi = int(params[i].Int())
				}
				add(sf, pi)
			}
		}
		return info
	}
	for _, sf := range f.Get("m_SubPrograms.Array").Array() {
		add(sf, -1)
	}
	return info
}

func buildPassState(f assetfield.Field) *PassState {
	st := &PassState{
		Name:          f.Get("m_Name").String(),
		LOD:           int(f.Get("m_LOD").Int()),
		SeparateBlend: f.Get("rtSeparateBlend").Bool(),
	}
	n := 1
	if st.SeparateBlend {
		n = 8
	}
	for i := 0; i < n; i++ {
		st.Blends = append(st.Blends, buildBlend(f.Get("rtBlend"+strconv.Itoa(i))))
	}

	val := func(path string) float32 { return float32(f.Get(path + ".val").Float()) }
	enum := func(path string) int { return int(val(path)) }

	st.AlphaToMask = val("alphaToMask")
	st.ZClip = ZClip(enum("zClip"))
	st.ZTest = ZTest(enum("zTest"))
	st.ZWrite = ZWrite(enum("zWrite"))
	st.Cull = CullMode(enum("culling"))
	st.OffsetFactor = val("offsetFactor")
	st.OffsetUnits = val("offsetUnits")

	st.StencilRef = val("stencilRef")
	st.StencilReadMask = val("stencilReadMask")
	st.StencilWriteMask = val("stencilWriteMask")
	face := func(prefix string) StencilFace {
		return StencilFace{
			Pass:  StencilOp(enum(prefix + ".pass")),
			Fail:  StencilOp(enum(prefix + ".fail")),
			ZFail: StencilOp(enum(prefix + ".zFail")),
			Comp:  StencilComp(enum(prefix + ".comp")),
		}
	}
	st.Stencil = face("stencilOp")
	st.StencilFront = face("stencilOpFront")
	st.StencilBack = face("stencilOpBack")

	st.Fog = Fog{
		Mode:    FogUnknown,
		Color:   [4]float32{val("fogColor.x"), val("fogColor.y"), val("fogColor.z"), val("fogColor.w")},
		Density: val("fogDensity"),
		Start:   val("fogStart"),
		End:     val("fogEnd"),
	}
	if fm := f.Get("fogMode"); fm.Exists() {
		st.Fog.Mode = FogMode(fm.Int())
	}
	st.Lighting = f.Get("lighting").Bool()
	st.Tags = buildTags(f.Get("m_Tags"))
	return st
}

func buildBlend(f assetfield.Field) RTBlend {
	enum := func(path string) int { return int(f.Get(path + ".val").Float()) }
	return RTBlend{
		Src:       BlendMode(enum("srcBlend")),
		Dst:       BlendMode(enum("destBlend")),
		SrcAlpha:  BlendMode(enum("srcBlendAlpha")),
		DstAlpha:  BlendMode(enum("destBlendAlpha")),
		Op:        BlendOp(enum("blendOp")),
		OpAlpha:   BlendOp(enum("blendOpAlpha")),
		ColorMask: ColorWriteMask(enum("colMask")),
	}
}
