package shaderlab

import (
	"strconv"
	"strings"

	"unshader/internal/hlsl"
	"unshader/internal/keywords"
)

// programDepth is the indentation of program text: Shader, SubShader, Pass.
const programDepth = 3

// Options select which variants end up in the program blocks.
type Options struct {
	Keywords []string
	Filter   keywords.FilterMode
}

// PassResult reports the program block written for one concrete pass.
type PassResult struct {
	SubShader int             `json:"sub_shader"`
	Pass      int             `json:"pass"`
	Name      string          `json:"name"`
	Baskets   int             `json:"baskets"`
	Absent    int             `json:"absent"`
	Block     *hlsl.PassBlock `json:"block"`
}

// Output is the serialized shader and what went into it.
type Output struct {
	Text   string       `json:"-"`
	Passes []PassResult `json:"passes"`
}

// Writer serializes a Shader to ShaderLab text.
type Writer struct {
	Emitter *hlsl.Emitter
	Options Options

	w   *hlsl.Writer
	out *Output
}

// Write renders s. Render state equal to the engine default is omitted.
func (wr *Writer) Write(s *Shader) (*Output, error) {
	wr.w = hlsl.NewWriter(0)
	wr.out = &Output{}
	w := wr.w

	w.Linef("Shader %s {", quote(s.Name))
	w.Push()
	writeProperties(w, s.Properties)
	for si := range s.SubShaders {
		if err := wr.writeSubShader(si, &s.SubShaders[si]); err != nil {
			return nil, err
		}
	}
	if s.Fallback != "" {
		w.Linef("Fallback %s", quote(s.Fallback))
	}
	w.Pop()
	w.Line("}")

	wr.out.Text = w.String()
	return wr.out, nil
}

func writeProperties(w *hlsl.Writer, props []Property) {
	w.Line("Properties {")
	w.Push()
	for _, p := range props {
		var b strings.Builder
		for _, a := range p.Attributes {
			b.WriteString("[" + a + "] ")
		}
		for _, ft := range flagTags {
			if p.Flags&ft.flag != 0 {
				b.WriteString("[" + ft.tag + "] ")
			}
		}
		b.WriteString(p.Name + " (" + quote(p.Description) + ", " + propertyTypeName(&p) + ") = " + propertyValue(&p))
		w.Line(b.String())
	}
	w.Pop()
	w.Line("}")
}

var textureDims = map[int]string{1: "any", 2: "2D", 3: "3D", 4: "Cube", 5: "2DArray", 6: "CubeArray"}

func propertyTypeName(p *Property) string {
	switch p.Type {
	case PropColor:
		return "Color"
	case PropVector:
		return "Vector"
	case PropRange:
		return "Range(" + formatFloat(p.Default[1]) + ", " + formatFloat(p.Default[2]) + ")"
	case PropTexture:
		if d, ok := textureDims[p.TextureDim]; ok {
			return d
		}
		return "any"
	case PropInt:
		return "Int"
	default:
		return "Float"
	}
}

func propertyValue(p *Property) string {
	switch p.Type {
	case PropColor, PropVector:
		return "(" + formatFloat(p.Default[0]) + ", " + formatFloat(p.Default[1]) + ", " +
			formatFloat(p.Default[2]) + ", " + formatFloat(p.Default[3]) + ")"
	case PropTexture:
		return quote(p.DefaultTexture) + " {}"
	default:
		return formatFloat(p.Default[0])
	}
}

func (wr *Writer) writeSubShader(si int, sub *SubShader) error {
	w := wr.w
	w.Line("SubShader {")
	w.Push()
	writeTags(w, sub.Tags)
	if sub.LOD != 0 {
		w.Linef("LOD %d", sub.LOD)
	}
	for pi := range sub.Passes {
		p := &sub.Passes[pi]
		if p.IsUsePass() {
			w.Linef("UsePass %s", quote(p.UsePass))
			continue
		}
		w.Line("Pass {")
		w.Push()
		if p.State != nil {
			writePassState(w, p.State)
		}
		body, err := wr.writeProgram(si, pi, p)
		if err != nil {
			return err
		}
		if body != "" {
			w.Line("CGPROGRAM")
			w.Raw(body)
			w.Line("ENDCG")
			w.Blank()
		}
		w.Pop()
		w.Line("}")
	}
	w.Pop()
	w.Line("}")
	return nil
}

func (wr *Writer) writeProgram(si, pi int, p *Pass) (string, error) {
	res := PassResult{SubShader: si, Pass: pi, Name: p.Name(), Baskets: len(p.Baskets)}
	variants := make([]hlsl.Variant, len(p.Baskets))
	for i := range p.Baskets {
		b := &p.Baskets[i]
		if !b.Present() {
			res.Absent++
		}
		variants[i] = hlsl.Variant{
			BlobIndex:  b.Info.BlobIndex,
			SubProgram: b.SubProgram,
			ParamIndex: b.Info.ParamIndex,
		}
		if b.Program != nil {
			variants[i].Common = b.Program.Common
			variants[i].Names = b.Program.Names
		}
	}

	em := wr.Emitter
	if em == nil {
		em = &hlsl.Emitter{}
	}
	block, err := em.WritePass(variants, hlsl.Selection{Keywords: wr.Options.Keywords, Filter: wr.Options.Filter}, programDepth)
	if err != nil {
		return "", err
	}
	res.Block = block
	wr.out.Passes = append(wr.out.Passes, res)
	return block.Text, nil
}

func writeTags(w *hlsl.Writer, tags []Tag) {
	if len(tags) == 0 {
		return
	}
	w.Line("Tags {")
	w.Push()
	for _, t := range tags {
		w.Linef("%s=%s", quote(t.Key), quote(t.Value))
	}
	w.Pop()
	w.Line("}")
}

func writePassState(w *hlsl.Writer, st *PassState) {
	w.Linef("Name %s", quote(st.Name))
	if st.LOD != 0 {
		w.Linef("LOD %d", st.LOD)
	}

	if st.SeparateBlend {
		for i := range st.Blends {
			writeBlend(w, &st.Blends[i], i)
		}
	} else if len(st.Blends) > 0 {
		writeBlend(w, &st.Blends[0], -1)
	}

	if st.AlphaToMask > 0 {
		w.Line("AlphaToMask On")
	}
	if st.ZClip == ZClipOn {
		w.Line("ZClip On")
	}
	if st.ZTest != ZTestNone && st.ZTest != ZTestLEqual {
		w.Linef("ZTest %s", st.ZTest)
	}
	if st.ZWrite != ZWriteOn {
		w.Linef("ZWrite %s", st.ZWrite)
	}
	if st.Cull != CullBack {
		w.Linef("Cull %s", st.Cull)
	}
	if st.OffsetFactor != 0 || st.OffsetUnits != 0 {
		w.Linef("Offset %s, %s", formatFloat(st.OffsetFactor), formatFloat(st.OffsetUnits))
	}

	writeStencil(w, st)
	writeFog(w, &st.Fog)

	if st.Lighting {
		w.Line("Lighting On")
	}
	writeTags(w, st.Tags)
}

func writeBlend(w *hlsl.Writer, b *RTBlend, index int) {
	target := ""
	if index >= 0 {
		target = strconv.Itoa(index) + " "
	}
	alphaDefault := b.SrcAlpha == BlendOne && b.DstAlpha == BlendZero
	if b.Src != BlendOne || b.Dst != BlendZero || !alphaDefault {
		line := "Blend " + target + b.Src.String() + " " + b.Dst.String()
		if !alphaDefault {
			line += ", " + b.SrcAlpha.String() + " " + b.DstAlpha.String()
		}
		w.Line(line)
	}
	if b.Op != BlendOpAdd || b.OpAlpha != BlendOpAdd {
		line := "BlendOp " + target + b.Op.String()
		if b.OpAlpha != BlendOpAdd {
			line += ", " + b.OpAlpha.String()
		}
		w.Line(line)
	}
	if b.ColorMask != ColorWriteAll {
		line := "ColorMask " + b.ColorMask.String()
		if index >= 0 {
			line += " " + strconv.Itoa(index)
		}
		w.Line(line)
	}
}

// isBaseline reports whether f is keep/keep/keep with comparison Always.
func (f StencilFace) isBaseline() bool { return f == DefaultStencil() }

// active reports whether f's operations are worth writing: any op other
// than Keep, or a comparison other than Always or Disabled.
func (f StencilFace) active() bool {
	return f.Pass != StencilKeep || f.Fail != StencilKeep || f.ZFail != StencilKeep ||
		(f.Comp != StencilCompAlways && f.Comp != StencilCompDisabled)
}

func writeStencil(w *hlsl.Writer, st *PassState) {
	if st.StencilRef == 0 && st.StencilReadMask == 255 && st.StencilWriteMask == 255 &&
		st.Stencil.isBaseline() && st.StencilFront.isBaseline() && st.StencilBack.isBaseline() {
		return
	}
	w.Line("Stencil {")
	w.Push()
	if st.StencilRef != 0 {
		w.Linef("Ref %s", formatFloat(st.StencilRef))
	}
	if st.StencilReadMask != 255 {
		w.Linef("ReadMask %s", formatFloat(st.StencilReadMask))
	}
	if st.StencilWriteMask != 255 {
		w.Linef("WriteMask %s", formatFloat(st.StencilWriteMask))
	}
	for _, face := range []struct {
		suffix string
		f      StencilFace
	}{{"", st.Stencil}, {"Front", st.StencilFront}, {"Back", st.StencilBack}} {
		if !face.f.active() {
			continue
		}
		w.Linef("Comp%s %s", face.suffix, face.f.Comp)
		w.Linef("Pass%s %s", face.suffix, face.f.Pass)
		w.Linef("Fail%s %s", face.suffix, face.f.Fail)
		w.Linef("ZFail%s %s", face.suffix, face.f.ZFail)
	}
	w.Pop()
	w.Line("}")
}

func writeFog(w *hlsl.Writer, f *Fog) {
	colorSet := f.Color != [4]float32{}
	if f.Mode == FogUnknown && !colorSet && f.Density == 0 && f.Start == 0 && f.End == 0 {
		return
	}
	w.Line("Fog {")
	w.Push()
	if f.Mode != FogUnknown {
		w.Linef("Mode %s", f.Mode)
	}
	if colorSet {
		w.Linef("Color (%s,%s,%s,%s)",
			formatFloat(f.Color[0]), formatFloat(f.Color[1]), formatFloat(f.Color[2]), formatFloat(f.Color[3]))
	}
	if f.Density != 0 {
		w.Linef("Density %s", formatFloat(f.Density))
	}
	if f.Start != 0 || f.End != 0 {
		w.Linef("Range %s, %s", formatFloat(f.Start), formatFloat(f.End))
	}
	w.Pop()
	w.Line("}")
}

// formatFloat writes the shortest decimal form of v, never an exponent.
func formatFloat(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }

func quote(s string) string { return `"` + s + `"` }
