package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"unshader/internal/blob"
	"unshader/internal/engine"
	"unshader/internal/hlsl"
	"unshader/internal/shaderlab"
)

func sub(t engine.ProgramType, kws ...string) *blob.SubProgram {
	return &blob.SubProgram{Type: t, GlobalKeywords: kws, Program: []byte{1}}
}

func testShader() *shaderlab.Shader {
	return &shaderlab.Shader{
		Name: "Custom/Test",
		SubShaders: []shaderlab.SubShader{{
			LOD: 100,
			Passes: []shaderlab.Pass{
				{UsePass: "Other/SHADOWCASTER"},
				{
					State: &shaderlab.PassState{Name: "FORWARD"},
					Baskets: []shaderlab.Basket{
						{Info: shaderlab.SubProgramInfo{BlobIndex: 0, Type: engine.ProgramDX11VertexSM40}, SubProgram: sub(engine.ProgramDX11VertexSM40)},
						{Info: shaderlab.SubProgramInfo{BlobIndex: 1, Type: engine.ProgramDX11PixelSM40}, SubProgram: sub(engine.ProgramDX11PixelSM40, "FOG")},
						{Info: shaderlab.SubProgramInfo{BlobIndex: 2, Type: engine.ProgramDX11PixelSM40}, SubProgram: sub(engine.ProgramDX11PixelSM40)},
						{Info: shaderlab.SubProgramInfo{BlobIndex: 9, Type: engine.ProgramDX11PixelSM40}},
					},
				},
			},
		}},
		Fallback: "Diffuse",
	}
}

func hasEdge(g *lattice.Graph, caller, callee string) bool {
	for _, e := range g.Edges {
		if e.Caller == caller && e.Callee == callee {
			return true
		}
	}
	return false
}

func TestStructure(t *testing.T) {
	g := Structure(testShader())
	require.Len(t, g.Nodes, 9)
	for _, e := range [][2]string{
		{"Shader Custom/Test", "SubShader0 LOD 100"},
		{"Shader Custom/Test", "Fallback Diffuse"},
		{"SubShader0 LOD 100", "UsePass Other/SHADOWCASTER"},
		{"SubShader0 LOD 100", "SubShader0/Pass1 FORWARD"},
		{"SubShader0/Pass1 FORWARD", "blob 0 DX11VertexSM40"},
		{"SubShader0/Pass1 FORWARD", "blob 1 DX11PixelSM40 FOG"},
		{"SubShader0/Pass1 FORWARD", "blob 9 (absent)"},
	} {
		require.True(t, hasEdge(g, e[0], e[1]), "%s -> %s", e[0], e[1])
	}
	require.NotEmpty(t, render.DOT(g, "structure"))
}

func TestFlow(t *testing.T) {
	w := &shaderlab.Writer{Emitter: &hlsl.Emitter{}}
	out, err := w.Write(testShader())
	require.NoError(t, err)

	cfg := Flow(out)
	require.Len(t, cfg.Funcs, 1)
	f := cfg.Funcs[0]
	require.Equal(t, "SubShader0/Pass1 FORWARD", f.Name)
	require.Len(t, f.Blocks, 6)

	// entry -> vertex -> dispatch -> {FOG, else} -> exit
	require.Equal(t, "#pragma shader_feature FOG", f.Blocks[0].Calls[0].Callee)
	require.Equal(t, []lattice.Successor{{BlockID: 1}}, f.Blocks[0].Succs)
	require.Equal(t, "DX11VertexSM40 blob 0", f.Blocks[1].Calls[0].Callee)
	require.Equal(t, []lattice.Successor{{BlockID: 2}}, f.Blocks[1].Succs)
	require.Equal(t, []lattice.Successor{{BlockID: 3, Cond: "FOG"}, {BlockID: 4, Cond: "else"}}, f.Blocks[2].Succs)
	require.Equal(t, "DX11PixelSM40 blob 1 [FOG]", f.Blocks[3].Calls[0].Callee)
	require.Equal(t, "DX11PixelSM40 blob 2", f.Blocks[4].Calls[0].Callee)
	require.Equal(t, []lattice.Successor{{BlockID: 5}}, f.Blocks[3].Succs)
	require.Equal(t, []lattice.Successor{{BlockID: 5}}, f.Blocks[4].Succs)
	require.True(t, f.Blocks[5].Term)
	require.Empty(t, f.Blocks[5].Succs)

	require.NotEmpty(t, render.DOTCFG(cfg, "flow"))
}

func TestFlowSkipsPassesWithoutPrograms(t *testing.T) {
	s := &shaderlab.Shader{SubShaders: []shaderlab.SubShader{{Passes: []shaderlab.Pass{{State: shaderlab.DefaultPassState()}}}}}
	out, err := (&shaderlab.Writer{}).Write(s)
	require.NoError(t, err)
	require.Len(t, out.Passes, 1)
	require.Empty(t, Flow(out).Funcs)
}

func TestPassName(t *testing.T) {
	require.Equal(t, "SubShader1/Pass0", PassName(1, 0, ""))
	require.Equal(t, "SubShader0/Pass2 META", PassName(0, 2, "META"))
}
