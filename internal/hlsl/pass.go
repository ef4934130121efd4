package hlsl

import (
	"strings"

	"github.com/pkg/errors"

	"unshader/internal/blob"
	"unshader/internal/engine"
	"unshader/internal/keywords"
	"unshader/internal/shaderfmt"
)

// ParamSource reads standalone parameter blocks by blob index.
// *blob.Store implements it.
type ParamSource interface {
	ReadShaderParams(index int) (*blob.ShaderParams, error)
}

// Variant is one program basket of a pass as seen by the emitter.
type Variant struct {
	BlobIndex  int
	SubProgram *blob.SubProgram // nil when the sub-program could not be read
	ParamIndex int              // standalone parameter blob, or -1
	Common     *blob.ShaderParams // shared by the slot, names already resolved
	Names      map[int]string
}

func (v *Variant) keywords() keywords.Variant {
	return keywords.Variant{Type: v.SubProgram.Type, Keywords: v.SubProgram.Keywords()}
}

// Emitter renders the CG block of one pass at a time.
type Emitter struct {
	Decompiler Decompiler
	Params     ParamSource
	Platform   engine.Platform
	Version    engine.Version
	Sink       shaderfmt.Sink
	Mode       shaderfmt.Mode
}

// Selection is the caller's keyword selection and filter mode.
type Selection struct {
	Keywords []string
	Filter   keywords.FilterMode
}

// PassBlock is the rendered program text of a pass plus the keyword
// analysis behind it. Analysis indices refer to Variants, and Blobs holds
// the blob index of each of them.
type PassBlock struct {
	Text     string             `json:"-"`
	Variants []keywords.Variant `json:"variants,omitempty"`
	Blobs    []int              `json:"blobs,omitempty"`
	Analysis *keywords.Result   `json:"analysis,omitempty"`
	Skipped  []int              `json:"skipped,omitempty"` // blob indices dropped at emission
}

type rendered struct {
	kv     keywords.Variant
	params *blob.ShaderParams
	fn     *Function
}

// WritePass renders the program block of one pass at indentation depth.
// Variants without a sub-program are left out. A variant whose parameters
// or bytecode cannot be turned into a function is reported to the sink and
// skipped; in strict mode it fails the pass instead.
func (e *Emitter) WritePass(variants []Variant, sel Selection, depth int) (*PassBlock, error) {
	sink := e.Sink
	if sink == nil {
		sink = shaderfmt.Discard
	}

	var present []*Variant
	for i := range variants {
		if variants[i].SubProgram != nil {
			present = append(present, &variants[i])
		}
	}
	block := &PassBlock{}
	if len(present) == 0 {
		return block, nil
	}

	kvs := make([]keywords.Variant, len(present))
	block.Blobs = make([]int, len(present))
	for i, v := range present {
		kvs[i] = v.keywords()
		block.Blobs[i] = v.BlobIndex
	}
	block.Variants = kvs
	res := keywords.Analyze(kvs, sel.Keywords, sel.Filter)
	block.Analysis = res

	var ok []int
	out := make(map[int]*rendered, len(res.Selected))
	for _, i := range res.Selected {
		r, err := e.render(present[i], kvs[i])
		if err != nil {
			if e.Mode == shaderfmt.ModeStrict {
				return nil, err
			}
			kind := shaderfmt.DiagDecompile
			if errors.Is(err, shaderfmt.ErrCorruptData) || errors.Is(err, shaderfmt.ErrOutOfRange) {
				kind = shaderfmt.DiagInvalid
			}
			sink.Addf(present[i].BlobIndex, kind, "%v", err)
			block.Skipped = append(block.Skipped, present[i].BlobIndex)
			continue
		}
		out[i] = r
		ok = append(ok, i)
	}

	w := NewWriter(depth)
	w.Blank()
	vert := writePrologue(w, kvs, ok, res.Partition)
	res.Steps = keywords.Plan(kvs, ok)

	seen := make(declared)
	for _, step := range res.Steps {
		r := out[step.Variant]
		if step.DeclareStruct {
			w.Blank()
			if !vert && r.fn.Stage == engine.StageFragment {
				// No vertex program rendered, so frag owns its input struct.
				writeStruct(w, varyings, r.fn.Inputs)
			}
			WriteStruct(w, r.fn)
		}
		if line := step.Line(); line != "" {
			w.Blank()
			w.Line(line)
		}
		scope := seen.scope(r.kv.Signature())
		w.Linef("// CBs for %s", r.kv.Type)
		for ci := range r.params.ConstantBuffers {
			writeConstantBuffer(w, &r.params.ConstantBuffers[ci], ci, scope)
		}
		w.Linef("// Textures for %s", r.kv.Type)
		writeTextures(w, r.params.Textures, scope)
		w.Blank()
		if r.kv.Type.IsConsole() {
			w.Linef("// Keywords: %s", strings.Join(r.kv.Sorted(), ", "))
		}
		WriteFunction(w, r.fn)
		if step.EndIf {
			w.Line("#endif")
		}
	}

	block.Text = w.String()
	return block, nil
}

// writePrologue names the entry points of the stages that rendered and
// lists the keyword pragmas of every present variant.
func writePrologue(w *Writer, kvs []keywords.Variant, ok []int, p keywords.Partition) (vert bool) {
	var frag bool
	for _, i := range ok {
		switch kvs[i].Type.Stage() {
		case engine.StageVertex:
			vert = true
		case engine.StageFragment:
			frag = true
		}
	}
	if vert {
		w.Line("#pragma vertex vert")
	}
	if frag {
		w.Line("#pragma fragment frag")
	}
	w.Blank()
	for _, l := range p.Pragmas() {
		w.Line(l)
	}
	return vert
}

// resolveParams picks the variant's parameters: the standalone parameter
// blob when it has one, else the sub-program's own. Names are resolved
// through the name table before the program-level common parameters are
// merged. Common is read, never modified.
func (e *Emitter) resolveParams(v *Variant) (*blob.ShaderParams, error) {
	var p blob.ShaderParams
	if v.ParamIndex >= 0 && e.Params != nil {
		sp, err := e.Params.ReadShaderParams(v.ParamIndex)
		if err != nil {
			return nil, errors.Wrapf(err, "hlsl: parameters %d", v.ParamIndex)
		}
		p = *sp
	} else {
		p = v.SubProgram.Params
	}
	sink := e.Sink
	if sink == nil {
		sink = shaderfmt.Discard
	}
	p.ResolveNames(v.Names, sink)
	if v.Common != nil {
		p.CombineCommon(v.Common)
	}
	return &p, nil
}

func (e *Emitter) render(v *Variant, kv keywords.Variant) (*rendered, error) {
	params, err := e.resolveParams(v)
	if err != nil {
		return nil, err
	}
	dec := e.Decompiler
	if dec == nil {
		dec = StubDecompiler{}
	}
	fn, err := dec.Decompile(&Request{
		Program:  v.SubProgram.Program,
		Type:     v.SubProgram.Type,
		Platform: e.Platform,
		Version:  e.Version,
		Params:   params,
	})
	if err != nil {
		if !errors.Is(err, shaderfmt.ErrDecompile) {
			err = errors.Wrap(shaderfmt.ErrDecompile, err.Error())
		}
		return nil, errors.Wrapf(err, "blob %d", v.BlobIndex)
	}
	if fn.Stage == engine.StageOther {
		fn.Stage = kv.Type.Stage()
	}
	return &rendered{kv: kv, params: params, fn: fn}, nil
}
