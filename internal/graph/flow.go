package graph

import (
	"fmt"

	"github.com/zboralski/lattice"

	"unshader/internal/hlsl"
	"unshader/internal/keywords"
	"unshader/internal/shaderlab"
)

// Flow builds one FuncCFG per pass of out that produced a program block.
func Flow(out *shaderlab.Output) *lattice.CFGGraph {
	cg := &lattice.CFGGraph{}
	for i := range out.Passes {
		pr := &out.Passes[i]
		if pr.Block == nil || pr.Block.Analysis == nil {
			continue
		}
		cg.Funcs = append(cg.Funcs, PassFlow(PassName(pr.SubShader, pr.Pass, pr.Name), pr.Block))
	}
	return cg
}

// PassFlow lays out the emission plan of one program block as a CFG.
//
// Block 0 carries the pass's pragma lines. A stage emitted without a
// directive is a single block; a stage wrapped in #if/#elif/#else gets a
// dispatch block whose successors, labelled with each variant's condition,
// are the variant blocks. All paths join at a terminal exit block.
func PassFlow(name string, pb *hlsl.PassBlock) *lattice.FuncCFG {
	f := &lattice.FuncCFG{Name: name}
	pos := 0
	newBlock := func() *lattice.BasicBlock {
		b := &lattice.BasicBlock{ID: len(f.Blocks), Start: pos, End: pos + 1}
		pos++
		f.Blocks = append(f.Blocks, b)
		return b
	}
	link := func(from []int, to int) {
		for _, id := range from {
			f.Blocks[id].Succs = append(f.Blocks[id].Succs, lattice.Successor{BlockID: to})
		}
	}

	entry := newBlock()
	for i, p := range pb.Analysis.Partition.Pragmas() {
		entry.Calls = append(entry.Calls, lattice.CallSite{Offset: i, Callee: p})
	}
	prev := []int{entry.ID}

	variantBlock := func(s keywords.Step) *lattice.BasicBlock {
		b := newBlock()
		b.Calls = []lattice.CallSite{{Offset: b.Start, Callee: variantLabel(pb, s.Variant)}}
		return b
	}

	steps := pb.Analysis.Steps
	for i := 0; i < len(steps); {
		if steps[i].Directive == keywords.DirNone {
			b := variantBlock(steps[i])
			link(prev, b.ID)
			prev = []int{b.ID}
			i++
			continue
		}
		d := newBlock()
		d.Calls = []lattice.CallSite{{Offset: d.Start, Callee: "#if " + steps[i].Stage.String()}}
		link(prev, d.ID)
		prev = nil
		for i < len(steps) {
			s := steps[i]
			i++
			b := variantBlock(s)
			cond := s.Cond
			if s.Directive == keywords.DirElse {
				cond = "else"
			}
			d.Succs = append(d.Succs, lattice.Successor{BlockID: b.ID, Cond: cond})
			prev = append(prev, b.ID)
			if s.EndIf {
				break
			}
		}
	}

	exit := newBlock()
	exit.Term = true
	link(prev, exit.ID)
	return f
}

func variantLabel(pb *hlsl.PassBlock, i int) string {
	v := pb.Variants[i]
	label := fmt.Sprintf("%s blob %d", v.Type, pb.Blobs[i])
	if len(v.Keywords) > 0 {
		label += " [" + v.Condition() + "]"
	}
	return label
}
