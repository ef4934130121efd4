package hlsl

import "unshader/internal/engine"

// Struct and entry point names shared by every variant of a pass.
const (
	vertexInput    = "appdata"
	varyings       = "v2f"
	fragmentOutput = "fout"
)

// WriteStruct writes the interface structs owned by fn's stage: appdata and
// v2f for a vertex program, fout for a fragment program.
func WriteStruct(w *Writer, fn *Function) {
	switch fn.Stage {
	case engine.StageVertex:
		writeStruct(w, vertexInput, fn.Inputs)
		writeStruct(w, varyings, fn.Outputs)
	case engine.StageFragment:
		writeStruct(w, fragmentOutput, fn.Outputs)
	}
}

func writeStruct(w *Writer, name string, fields []Field) {
	w.Linef("struct %s", name)
	w.Line("{")
	w.Push()
	for _, f := range fields {
		if f.Semantic == "" {
			w.Linef("%s %s;", f.Type, f.Name)
			continue
		}
		w.Linef("%s %s : %s;", f.Type, f.Name, f.Semantic)
	}
	w.Pop()
	w.Line("};")
}

// WriteFunction writes fn as the stage's entry point.
func WriteFunction(w *Writer, fn *Function) {
	var ret, sig, param string
	switch fn.Stage {
	case engine.StageVertex:
		ret, sig, param = varyings, "vert", vertexInput+" v"
	case engine.StageFragment:
		ret, sig, param = fragmentOutput, "frag", varyings+" inp"
	default:
		return
	}
	w.Linef("%s %s(%s)", ret, sig, param)
	w.Line("{")
	w.Push()
	w.Linef("%s o;", ret)
	for _, s := range fn.Body {
		w.Line(s)
	}
	w.Line("return o;")
	w.Pop()
	w.Line("}")
}
