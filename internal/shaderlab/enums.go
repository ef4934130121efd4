package shaderlab

import "strconv"

// Render-state enumerations, numbered as the engine serializes them.
// String returns the ShaderLab keyword, or the number for unknown values.

type BlendMode int

const (
	BlendZero BlendMode = iota
	BlendOne
	BlendDstColor
	BlendSrcColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcAlphaSaturate
	BlendOneMinusSrcAlpha
)

var blendModeNames = []string{
	"Zero", "One", "DstColor", "SrcColor", "OneMinusDstColor", "SrcAlpha",
	"OneMinusSrcColor", "DstAlpha", "OneMinusDstAlpha", "SrcAlphaSaturate", "OneMinusSrcAlpha",
}

func (m BlendMode) String() string { return enumName(blendModeNames, int(m)) }

type BlendOp int

const (
	BlendOpAdd BlendOp = iota
	BlendOpSub
	BlendOpRevSub
	BlendOpMin
	BlendOpMax
)

var blendOpNames = []string{
	"Add", "Sub", "RevSub", "Min", "Max",
	"LogicalClear", "LogicalSet", "LogicalCopy", "LogicalCopyInverted", "LogicalNoop",
	"LogicalInvert", "LogicalAnd", "LogicalNand", "LogicalOr", "LogicalNor",
	"LogicalXor", "LogicalEquiv", "LogicalAndReverse", "LogicalAndInverted",
	"LogicalOrReverse", "LogicalOrInverted",
	"Multiply", "Screen", "Overlay", "Darken", "Lighten", "ColorDodge", "ColorBurn",
	"HardLight", "SoftLight", "Difference", "Exclusion",
	"HSLHue", "HSLSaturation", "HSLColor", "HSLLuminosity",
}

func (o BlendOp) String() string { return enumName(blendOpNames, int(o)) }

// ColorWriteMask is a bitset of written channels.
type ColorWriteMask int

const (
	ColorWriteNone  ColorWriteMask = 0
	ColorWriteAlpha ColorWriteMask = 1
	ColorWriteBlue  ColorWriteMask = 2
	ColorWriteGreen ColorWriteMask = 4
	ColorWriteRed   ColorWriteMask = 8
	ColorWriteAll   ColorWriteMask = 15
)

// String renders the mask as ShaderLab writes it: "0" or channels in RGBA order.
func (m ColorWriteMask) String() string {
	if m == ColorWriteNone {
		return "0"
	}
	var s []byte
	for _, c := range []struct {
		bit ColorWriteMask
		ch  byte
	}{{ColorWriteRed, 'R'}, {ColorWriteGreen, 'G'}, {ColorWriteBlue, 'B'}, {ColorWriteAlpha, 'A'}} {
		if m&c.bit != 0 {
			s = append(s, c.ch)
		}
	}
	return string(s)
}

type ZClip int

const (
	ZClipOff ZClip = iota
	ZClipOn
)

type ZTest int

const (
	ZTestNone ZTest = iota
	ZTestNever
	ZTestLess
	ZTestEqual
	ZTestLEqual
	ZTestGreater
	ZTestNotEqual
	ZTestGEqual
	ZTestAlways
)

var compareNames = []string{
	"None", "Never", "Less", "Equal", "LEqual", "Greater", "NotEqual", "GEqual", "Always",
}

func (z ZTest) String() string { return enumName(compareNames, int(z)) }

type ZWrite int

const (
	ZWriteOff ZWrite = iota
	ZWriteOn
)

func (z ZWrite) String() string { return enumName([]string{"Off", "On"}, int(z)) }

type CullMode int

const (
	CullOff CullMode = iota
	CullFront
	CullBack
)

func (c CullMode) String() string { return enumName([]string{"Off", "Front", "Back"}, int(c)) }

type StencilOp int

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrSat
	StencilDecrSat
	StencilInvert
	StencilIncrWrap
	StencilDecrWrap
)

var stencilOpNames = []string{
	"Keep", "Zero", "Replace", "IncrSat", "DecrSat", "Invert", "IncrWrap", "DecrWrap",
}

func (o StencilOp) String() string { return enumName(stencilOpNames, int(o)) }

// StencilComp shares numbering with ZTest; 0 means the test is disabled.
type StencilComp int

const (
	StencilCompDisabled StencilComp = iota
	StencilCompNever
	StencilCompLess
	StencilCompEqual
	StencilCompLEqual
	StencilCompGreater
	StencilCompNotEqual
	StencilCompGEqual
	StencilCompAlways
)

func (c StencilComp) String() string {
	if c == StencilCompDisabled {
		return "Disabled"
	}
	return enumName(compareNames, int(c))
}

type FogMode int

const (
	FogUnknown  FogMode = -1
	FogDisabled FogMode = 0
	FogLinear   FogMode = 1
	FogExp      FogMode = 2
	FogExp2     FogMode = 3
)

func (f FogMode) String() string {
	if f == FogUnknown {
		return "Unknown"
	}
	return enumName([]string{"Off", "Linear", "Exp", "Exp2"}, int(f))
}

// PropertyType is the declared type of a material property.
type PropertyType int

const (
	PropColor PropertyType = iota
	PropVector
	PropFloat
	PropRange
	PropTexture
	PropInt
)

// PropertyFlag is a bitset of material property attributes.
type PropertyFlag uint32

const (
	FlagHideInInspector PropertyFlag = 1 << iota
	FlagPerRendererData
	FlagNoScaleOffset
	FlagNormal
	FlagHDR
	FlagGamma
	FlagNonModifiableTextureData
	FlagMainTexture
	FlagMainColor
)

// flagTags are the flags rendered as attribute tags, in emission order.
var flagTags = []struct {
	flag PropertyFlag
	tag  string
}{
	{FlagHideInInspector, "HideInInspector"},
	{FlagPerRendererData, "PerRendererData"},
	{FlagNoScaleOffset, "NoScaleOffset"},
	{FlagNormal, "Normal"},
	{FlagHDR, "HDR"},
	{FlagGamma, "Gamma"},
}

func enumName(names []string, v int) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return strconv.Itoa(v)
}
