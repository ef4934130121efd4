// Package hlsl renders the program blocks of a pass: pragmas, preprocessor
// variant blocks, resource declarations and decompiled functions.
package hlsl

import (
	"github.com/pkg/errors"

	"unshader/internal/blob"
	"unshader/internal/engine"
	"unshader/internal/shaderfmt"
)

// Request is one sub-program handed to a Decompiler.
type Request struct {
	Program  []byte
	Type     engine.ProgramType
	Platform engine.Platform
	Version  engine.Version
	Params   *blob.ShaderParams
}

// Decompiler turns GPU bytecode into a function. Implementations wrap a
// bytecode backend (DXBC, NVN); errors mark the variant as undecompilable.
type Decompiler interface {
	Decompile(req *Request) (*Function, error)
}

// DecompilerFunc adapts a function to Decompiler.
type DecompilerFunc func(req *Request) (*Function, error)

func (f DecompilerFunc) Decompile(req *Request) (*Function, error) { return f(req) }

// Field is one member of an input or output struct.
type Field struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Semantic string `json:"semantic"`
}

// Function is a decompiled program: its stage structs and body statements.
type Function struct {
	Stage   engine.Stage `json:"stage"`
	Inputs  []Field      `json:"inputs"`
	Outputs []Field      `json:"outputs"`
	Body    []string     `json:"body"` // statements, unindented
}

// StubDecompiler stands in when no bytecode backend is linked. It produces
// the default vertex/fragment interface and a body noting the bytecode size.
type StubDecompiler struct{}

func (StubDecompiler) Decompile(req *Request) (*Function, error) {
	if len(req.Program) == 0 {
		return nil, errors.Wrapf(shaderfmt.ErrDecompile, "hlsl: %s: empty bytecode", req.Type)
	}
	st := req.Type.Stage()
	if st == engine.StageOther {
		return nil, errors.Wrapf(shaderfmt.ErrDecompile, "hlsl: %s: unsupported program type", req.Type)
	}
	fn := &Function{Stage: st}
	varyings := []Field{
		{Type: "float4", Name: "position", Semantic: "SV_POSITION"},
		{Type: "float2", Name: "texcoord", Semantic: "TEXCOORD0"},
	}
	switch st {
	case engine.StageVertex:
		fn.Inputs = []Field{
			{Type: "float4", Name: "vertex", Semantic: "POSITION"},
			{Type: "float2", Name: "texcoord", Semantic: "TEXCOORD0"},
		}
		fn.Outputs = varyings
		fn.Body = []string{
			"o.position = UnityObjectToClipPos(v.vertex);",
			"o.texcoord = v.texcoord;",
		}
	case engine.StageFragment:
		fn.Inputs = varyings
		fn.Outputs = []Field{{Type: "float4", Name: "sv_target", Semantic: "SV_Target"}}
		fn.Body = []string{"o.sv_target = float4(1.0, 1.0, 1.0, 1.0);"}
	}
	fn.Body = append([]string{
		"// " + req.Type.String() + " bytecode, " + itoa(len(req.Program)) + " bytes, not decompiled",
	}, fn.Body...)
	return fn, nil
}
