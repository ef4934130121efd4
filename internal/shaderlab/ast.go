// Package shaderlab builds a platform-independent shader tree from a
// compiled shader object and serializes it back to ShaderLab text.
package shaderlab

import (
	"unshader/internal/blob"
	"unshader/internal/engine"
)

type Shader struct {
	Name       string      `json:"name"`
	Properties []Property  `json:"properties"`
	SubShaders []SubShader `json:"sub_shaders"`
	Fallback   string      `json:"fallback,omitempty"`
}

// Property is one material property. For PropRange, Default[1] and
// Default[2] hold the range bounds.
type Property struct {
	Attributes     []string     `json:"attributes,omitempty"`
	Flags          PropertyFlag `json:"flags"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Type           PropertyType `json:"type"`
	Default        [4]float32   `json:"default"`
	DefaultTexture string       `json:"default_texture,omitempty"`
	TextureDim     int          `json:"texture_dim,omitempty"`
}

type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SubShader struct {
	LOD    int    `json:"lod"`
	Tags   []Tag  `json:"tags,omitempty"`
	Passes []Pass `json:"passes"`
}

// Pass is either a reference to another shader's pass (UsePass set) or a
// concrete pass with render state and program baskets.
type Pass struct {
	UsePass string     `json:"use_pass,omitempty"`
	State   *PassState `json:"state,omitempty"`
	Baskets []Basket   `json:"baskets,omitempty"`
}

func (p *Pass) IsUsePass() bool { return p.UsePass != "" }

// Name returns the pass name, or the referenced name for a use-pass.
func (p *Pass) Name() string {
	if p.IsUsePass() {
		return p.UsePass
	}
	if p.State != nil {
		return p.State.Name
	}
	return ""
}

// RTBlend is the blend state of one render target.
type RTBlend struct {
	Src       BlendMode      `json:"src"`
	Dst       BlendMode      `json:"dst"`
	SrcAlpha  BlendMode      `json:"src_alpha"`
	DstAlpha  BlendMode      `json:"dst_alpha"`
	Op        BlendOp        `json:"op"`
	OpAlpha   BlendOp        `json:"op_alpha"`
	ColorMask ColorWriteMask `json:"color_mask"`
}

// StencilFace is the operation set of one face (or both).
type StencilFace struct {
	Pass  StencilOp   `json:"pass"`
	Fail  StencilOp   `json:"fail"`
	ZFail StencilOp   `json:"zfail"`
	Comp  StencilComp `json:"comp"`
}

type Fog struct {
	Mode    FogMode    `json:"mode"`
	Color   [4]float32 `json:"color"`
	Density float32    `json:"density"`
	Start   float32    `json:"start"`
	End     float32    `json:"end"`
}

// PassState is the fixed-function state of a pass.
type PassState struct {
	Name string `json:"name"`
	LOD  int    `json:"lod"`

	// SeparateBlend gives every one of the eight render targets its own
	// blend state. Otherwise Blends holds a single shared state.
	SeparateBlend bool      `json:"separate_blend"`
	Blends        []RTBlend `json:"blends"`

	AlphaToMask  float32  `json:"alpha_to_mask"`
	ZClip        ZClip    `json:"zclip"`
	ZTest        ZTest    `json:"ztest"`
	ZWrite       ZWrite   `json:"zwrite"`
	Cull         CullMode `json:"cull"`
	OffsetFactor float32  `json:"offset_factor"`
	OffsetUnits  float32  `json:"offset_units"`

	StencilRef       float32     `json:"stencil_ref"`
	StencilReadMask  float32     `json:"stencil_read_mask"`
	StencilWriteMask float32     `json:"stencil_write_mask"`
	Stencil          StencilFace `json:"stencil"`
	StencilFront     StencilFace `json:"stencil_front"`
	StencilBack      StencilFace `json:"stencil_back"`

	Fog      Fog   `json:"fog"`
	Lighting bool  `json:"lighting"`
	Tags     []Tag `json:"tags,omitempty"`
}

// DefaultBlend is the engine's blend state: One Zero, Add, all channels.
func DefaultBlend() RTBlend {
	return RTBlend{
		Src: BlendOne, Dst: BlendZero, SrcAlpha: BlendOne, DstAlpha: BlendZero,
		Op: BlendOpAdd, OpAlpha: BlendOpAdd, ColorMask: ColorWriteAll,
	}
}

// DefaultStencil is the baseline face: keep everything, always pass.
func DefaultStencil() StencilFace {
	return StencilFace{Pass: StencilKeep, Fail: StencilKeep, ZFail: StencilKeep, Comp: StencilCompAlways}
}

// DefaultPassState returns a pass state holding every engine default. It
// serializes to no render-state lines besides the pass name.
func DefaultPassState() *PassState {
	return &PassState{
		Blends:           []RTBlend{DefaultBlend()},
		ZTest:            ZTestLEqual,
		ZWrite:           ZWriteOn,
		Cull:             CullBack,
		StencilReadMask:  255,
		StencilWriteMask: 255,
		Stencil:          DefaultStencil(),
		StencilFront:     DefaultStencil(),
		StencilBack:      DefaultStencil(),
		Fog:              Fog{Mode: FogUnknown},
	}
}

// ProgramInfo is one program slot of a pass (vertex or fragment) with the
// data shared by all of its sub-programs.
type ProgramInfo struct {
	SubPrograms []SubProgramInfo   `json:"sub_programs"`
	Common      *blob.ShaderParams `json:"common,omitempty"`
	Names       map[int]string     `json:"-"`
}

// SubProgramInfo locates one compiled variant in the blob store.
type SubProgramInfo struct {
	BlobIndex  int                `json:"blob_index"`
	Type       engine.ProgramType `json:"type"`
	Tier       int                `json:"tier"`
	ParamIndex int                `json:"param_index"` // standalone parameter blob, or -1
}

// Basket binds a program variant to its parsed sub-program. SubProgram is
// nil and Err set when the sub-program could not be read; such baskets
// carry no keywords and produce no text.
type Basket struct {
	Program    *ProgramInfo     `json:"-"`
	Info       SubProgramInfo   `json:"info"`
	SubProgram *blob.SubProgram `json:"sub_program,omitempty"`
	Err        error            `json:"-"`
}

func (b *Basket) Present() bool { return b.SubProgram != nil }
