package shaderlab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeShader(t *testing.T, s *Shader) string {
	t.Helper()
	out, err := (&Writer{}).Write(s)
	require.NoError(t, err)
	return out.Text
}

func TestWriteDefaultPassState(t *testing.T) {
	text := writeShader(t, &Shader{
		Name:       "Test/Default",
		SubShaders: []SubShader{{Passes: []Pass{{State: DefaultPassState()}}}},
	})
	want := `Shader "Test/Default" {
    Properties {
    }
    SubShader {
        Pass {
            Name ""
        }
    }
}
`
	require.Equal(t, want, text)
	for _, kw := range []string{"Blend", "ZTest", "ZWrite", "ZClip", "Cull", "Offset", "Stencil", "Fog", "ColorMask", "Lighting", "Tags", "LOD"} {
		require.NotContains(t, text, kw)
	}
}

func passBody(t *testing.T, st *PassState) []string {
	t.Helper()
	text := writeShader(t, &Shader{SubShaders: []SubShader{{Passes: []Pass{{State: st}}}}})
	start := strings.Index(text, "Pass {\n") + len("Pass {\n")
	end := strings.LastIndex(text, "        }\n    }\n")
	var lines []string
	for _, l := range strings.Split(strings.TrimRight(text[start:end], "\n"), "\n") {
		lines = append(lines, strings.TrimPrefix(l, "            "))
	}
	return lines
}

func TestWritePassState(t *testing.T) {
	st := DefaultPassState()
	st.Name = "FORWARD"
	st.LOD = 200
	st.Blends[0] = RTBlend{
		Src: BlendSrcAlpha, Dst: BlendOneMinusSrcAlpha, SrcAlpha: BlendOne, DstAlpha: BlendZero,
		Op: BlendOpRevSub, OpAlpha: BlendOpAdd,
		ColorMask: ColorWriteRed | ColorWriteGreen | ColorWriteBlue,
	}
	st.AlphaToMask = 1
	st.ZClip = ZClipOn
	st.ZTest = ZTestAlways
	st.ZWrite = ZWriteOff
	st.Cull = CullOff
	st.OffsetFactor, st.OffsetUnits = -1, -0.5
	st.StencilRef = 2
	st.Stencil.Comp = StencilCompEqual
	st.Stencil.Pass = StencilReplace
	st.Fog = Fog{Mode: FogLinear, Color: [4]float32{1, 0.5, 0, 1}, Start: 10, End: 50}
	st.Lighting = true
	st.Tags = []Tag{{Key: "LightMode", Value: "ForwardBase"}}

	require.Equal(t, []string{
		`Name "FORWARD"`,
		`LOD 200`,
		`Blend SrcAlpha OneMinusSrcAlpha`,
		`BlendOp RevSub`,
		`ColorMask RGB`,
		`AlphaToMask On`,
		`ZClip On`,
		`ZTest Always`,
		`ZWrite Off`,
		`Cull Off`,
		`Offset -1, -0.5`,
		`Stencil {`,
		`    Ref 2`,
		`    Comp Equal`,
		`    Pass Replace`,
		`    Fail Keep`,
		`    ZFail Keep`,
		`}`,
		`Fog {`,
		`    Mode Linear`,
		`    Color (1,0.5,0,1)`,
		`    Range 10, 50`,
		`}`,
		`Lighting On`,
		`Tags {`,
		`    "LightMode"="ForwardBase"`,
		`}`,
	}, passBody(t, st))
}

func TestWriteSeparateBlends(t *testing.T) {
	st := DefaultPassState()
	st.SeparateBlend = true
	st.Blends = make([]RTBlend, 8)
	for i := range st.Blends {
		st.Blends[i] = DefaultBlend()
	}
	st.Blends[0].Src, st.Blends[0].Dst = BlendOne, BlendOne
	st.Blends[0].SrcAlpha, st.Blends[0].DstAlpha = BlendZero, BlendOne
	st.Blends[1].ColorMask = ColorWriteNone
	st.Blends[2].Op, st.Blends[2].OpAlpha = BlendOpMax, BlendOpMin
	st.StencilReadMask = 7
	st.StencilBack = StencilFace{Pass: StencilIncrWrap, Fail: StencilKeep, ZFail: StencilKeep, Comp: StencilCompAlways}

	require.Equal(t, []string{
		`Name ""`,
		`Blend 0 One One, Zero One`,
		`ColorMask 0 1`,
		`BlendOp 2 Max, Min`,
		`Stencil {`,
		`    ReadMask 7`,
		`    CompBack Always`,
		`    PassBack IncrWrap`,
		`    FailBack Keep`,
		`    ZFailBack Keep`,
		`}`,
	}, passBody(t, st))
}

func TestWriteFogDensityOnly(t *testing.T) {
	st := DefaultPassState()
	st.Fog.Density = 0.25
	require.Equal(t, []string{`Name ""`, `Fog {`, `    Density 0.25`, `}`}, passBody(t, st))
}

func TestWriteProperties(t *testing.T) {
	text := writeShader(t, &Shader{
		Name: "Props",
		Properties: []Property{
			{
				Attributes: []string{"Toggle"}, Flags: FlagHDR | FlagHideInInspector,
				Name: "_Glow", Description: "Glow", Type: PropColor, Default: [4]float32{1, 0.5, 0, 1},
			},
			{Name: "_Cutoff", Description: "Alpha Cutoff", Type: PropRange, Default: [4]float32{0.5, 0, 1, 0}},
			{Name: "_MainTex", Description: "Albedo", Type: PropTexture, Flags: FlagNoScaleOffset, DefaultTexture: "white", TextureDim: 2},
			{Name: "_Sky", Description: "Sky", Type: PropTexture, DefaultTexture: "", TextureDim: 4},
			{Name: "_Any", Description: "Any", Type: PropTexture, DefaultTexture: "black"},
			{Name: "_Ref", Description: "Stencil Ref", Type: PropInt, Default: [4]float32{3}},
			{Name: "_Scale", Description: "Scale", Type: PropFloat, Default: [4]float32{0.125}},
			{Name: "_Dir", Description: "Dir", Type: PropVector, Default: [4]float32{0, 1, 0, 0}},
		},
		Fallback: "Diffuse",
	})
	for _, line := range []string{
		`        [Toggle] [HideInInspector] [HDR] _Glow ("Glow", Color) = (1, 0.5, 0, 1)`,
		`        _Cutoff ("Alpha Cutoff", Range(0, 1)) = 0.5`,
		`        [NoScaleOffset] _MainTex ("Albedo", 2D) = "white" {}`,
		`        _Sky ("Sky", Cube) = "" {}`,
		`        _Any ("Any", any) = "black" {}`,
		`        _Ref ("Stencil Ref", Int) = 3`,
		`        _Scale ("Scale", Float) = 0.125`,
		`        _Dir ("Dir", Vector) = (0, 1, 0, 0)`,
		`    Fallback "Diffuse"`,
	} {
		require.Contains(t, text, line+"\n")
	}
}

func TestWriteSubShaderHeader(t *testing.T) {
	text := writeShader(t, &Shader{
		Name: "S",
		SubShaders: []SubShader{{
			LOD:  300,
			Tags: []Tag{{Key: "RenderType", Value: "Opaque"}, {Key: "Queue", Value: "Geometry"}},
			Passes: []Pass{
				{UsePass: "Standard/FORWARD"},
			},
		}},
	})
	require.Contains(t, text, `    SubShader {
        Tags {
            "RenderType"="Opaque"
            "Queue"="Geometry"
        }
        LOD 300
        UsePass "Standard/FORWARD"
    }
`)
}

func TestColorWriteMaskString(t *testing.T) {
	tests := []struct {
		m    ColorWriteMask
		want string
	}{
		{ColorWriteNone, "0"},
		{ColorWriteAll, "RGBA"},
		{ColorWriteRed | ColorWriteAlpha, "RA"},
		{ColorWriteBlue, "B"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("ColorWriteMask(%d) = %q, want %q", int(tt.m), got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float32
		want string
	}{
		{0, "0"},
		{1, "1"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{1e10, "10000000000"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.v); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
