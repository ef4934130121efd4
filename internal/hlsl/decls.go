package hlsl

import (
	"strings"

	"unshader/internal/blob"
)

// legacyLiveBuffer prefixes constant buffers whose members are declared
// live even though the buffer is not $Globals.
const legacyLiveBuffer = "UnityPerDrawSprite"

var swizzle = [4]byte{'x', 'y', 'z', 'w'}

// declared tracks names already emitted, per keyword signature.
type declared map[string]map[string]bool

func (d declared) scope(signature string) map[string]bool {
	s, ok := d[signature]
	if !ok {
		s = make(map[string]bool)
		d[signature] = s
	}
	return s
}

// writeConstantBuffer writes the members of params.ConstantBuffers[cbIndex]
// not yet in seen. Members of buffers other than $Globals are written as
// comments, except for the scalar and vector members of the legacy sprite
// buffers; such buffers are bracketed by CBUFFER_START/CBUFFER_END comments.
func writeConstantBuffer(w *Writer, cb *blob.ConstantBuffer, cbIndex int, seen map[string]bool) {
	global := cb.Name == blob.GlobalsBuffer
	sprite := strings.HasPrefix(cb.Name, legacyLiveBuffer)

	var lines []string
	for _, m := range cb.Members() {
		if m.Name == "" || builtinUniforms[m.Name] || seen[m.Name] {
			continue
		}
		seen[m.Name] = true

		decl := m.Name
		if m.ArraySize > 0 {
			decl += "[" + itoa(int(m.ArraySize)) + "]"
		}
		line := m.TypeName() + " " + decl + "; // " + itoa(int(m.Index)) +
			" (starting at cb" + itoa(cbIndex) + "[" + itoa(int(m.Index/16)) + "]." + string(swizzle[uint32(m.Index)%16/4]) + ")"
		if !global && (m.ArraySize > 0 || !sprite) {
			line = "// " + line
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}

	if !global {
		w.Linef("// CBUFFER_START(%s) // %d", cb.Name, cbIndex)
		w.Push()
	}
	for _, l := range lines {
		w.Line(l)
	}
	if !global {
		w.Pop()
		w.Line("// CBUFFER_END")
	}
}

// writeTextures declares the sampler of every texture not yet in seen.
func writeTextures(w *Writer, textures []blob.TextureParam, seen map[string]bool) {
	for _, t := range textures {
		if t.Name == "" || builtinTextures[t.Name] || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		switch t.Dim {
		case 2:
			w.Linef("sampler2D %s; // %d", t.Name, t.Index)
		case 3:
			w.Linef("sampler3D %s; // %d", t.Name, t.Index)
		case 4:
			w.Linef("samplerCUBE %s; // %d", t.Name, t.Index)
		case 5:
			w.Linef("UNITY_DECLARE_TEX2DARRAY(%s); // %d", t.Name, t.Index)
		case 6:
			w.Linef("UNITY_DECLARE_TEXCUBEARRAY(%s); // %d", t.Name, t.Index)
		default:
			w.Linef("sampler2D %s; // %d // Unsure of real type (%d)", t.Name, t.Index, t.Dim)
		}
	}
}
