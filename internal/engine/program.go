package engine

import "fmt"

// ProgramType is the GPU program type of one compiled sub-program.
type ProgramType int32

const (
	ProgramUnknown          ProgramType = 0
	ProgramGLLegacy         ProgramType = 1
	ProgramGLES31AEP        ProgramType = 2
	ProgramGLES31           ProgramType = 3
	ProgramGLES3            ProgramType = 4
	ProgramGLES             ProgramType = 5
	ProgramGLCore32         ProgramType = 6
	ProgramGLCore41         ProgramType = 7
	ProgramGLCore43         ProgramType = 8
	ProgramDX9VertexSM20    ProgramType = 9
	ProgramDX9VertexSM30    ProgramType = 10
	ProgramDX9PixelSM20     ProgramType = 11
	ProgramDX9PixelSM30     ProgramType = 12
	ProgramDX10Level9Vertex ProgramType = 13
	ProgramDX10Level9Pixel  ProgramType = 14
	ProgramDX11VertexSM40   ProgramType = 15
	ProgramDX11VertexSM50   ProgramType = 16
	ProgramDX11PixelSM40    ProgramType = 17
	ProgramDX11PixelSM50    ProgramType = 18
	ProgramDX11GeometrySM40 ProgramType = 19
	ProgramDX11GeometrySM50 ProgramType = 20
	ProgramDX11HullSM50     ProgramType = 21
	ProgramDX11DomainSM50   ProgramType = 22
	ProgramMetalVS          ProgramType = 23
	ProgramMetalFS          ProgramType = 24
	ProgramSPIRV            ProgramType = 25
	ProgramConsoleVS        ProgramType = 26
	ProgramConsoleFS        ProgramType = 27
	ProgramConsoleHS        ProgramType = 28
	ProgramConsoleDS        ProgramType = 29
	ProgramConsoleGS        ProgramType = 30
	ProgramRayTracing       ProgramType = 31
	ProgramPS5NGGC          ProgramType = 32
)

var programNames = [...]string{
	"Unknown", "GLLegacy", "GLES31AEP", "GLES31", "GLES3", "GLES",
	"GLCore32", "GLCore41", "GLCore43",
	"DX9VertexSM20", "DX9VertexSM30", "DX9PixelSM20", "DX9PixelSM30",
	"DX10Level9Vertex", "DX10Level9Pixel",
	"DX11VertexSM40", "DX11VertexSM50", "DX11PixelSM40", "DX11PixelSM50",
	"DX11GeometrySM40", "DX11GeometrySM50", "DX11HullSM50", "DX11DomainSM50",
	"MetalVS", "MetalFS", "SPIRV",
	"ConsoleVS", "ConsoleFS", "ConsoleHS", "ConsoleDS", "ConsoleGS",
	"RayTracing", "PS5NGGC",
}

func (t ProgramType) String() string {
	if t >= 0 && int(t) < len(programNames) {
		return programNames[t]
	}
	return fmt.Sprintf("ProgramType(%d)", int32(t))
}

func (t ProgramType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Stage is the pipeline stage a program type belongs to, as far as
// reconstruction is concerned.
type Stage int

const (
	StageOther Stage = iota
	StageVertex
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "other"
	}
}

func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Stage classifies t. Only program types with a known decompiler mapping are
// vertex or fragment; everything else is StageOther.
func (t ProgramType) Stage() Stage {
	switch t {
	case ProgramDX11VertexSM40, ProgramDX11VertexSM50, ProgramConsoleVS:
		return StageVertex
	case ProgramDX11PixelSM40, ProgramDX11PixelSM50, ProgramConsoleFS:
		return StageFragment
	default:
		return StageOther
	}
}

// IsConsole reports whether t is an NVN console program.
func (t ProgramType) IsConsole() bool {
	return t >= ProgramConsoleVS && t <= ProgramConsoleGS
}
