// Package graph builds lattice graphs of a reconstructed shader: the
// shader/subshader/pass/variant structure and, per pass, the conditional
// flow the program block selects variants through.
package graph

import (
	"fmt"
	"strings"

	"github.com/zboralski/lattice"

	"unshader/internal/shaderlab"
)

// PassName is the node and function name of pass pi of subshader si.
func PassName(si, pi int, name string) string {
	if name == "" {
		return fmt.Sprintf("SubShader%d/Pass%d", si, pi)
	}
	return fmt.Sprintf("SubShader%d/Pass%d %s", si, pi, name)
}

// basketName labels a variant node by blob, program type and keywords.
// Absent baskets are labelled as such.
func basketName(b *shaderlab.Basket) string {
	if !b.Present() {
		return fmt.Sprintf("blob %d (absent)", b.Info.BlobIndex)
	}
	label := fmt.Sprintf("blob %d %s", b.Info.BlobIndex, b.Info.Type)
	if kws := b.SubProgram.Keywords(); len(kws) > 0 {
		label += " " + strings.Join(kws, " ")
	}
	return label
}

// Structure returns the containment graph of s. Each subshader, pass and
// program basket becomes a node; use-passes point at the referenced pass
// name. Baskets shared between passes collapse into one node.
func Structure(s *shaderlab.Shader) *lattice.Graph {
	g := &lattice.Graph{}
	seen := make(map[string]bool)
	node := func(parent, name string) {
		if !seen[name] {
			seen[name] = true
			g.Nodes = append(g.Nodes, name)
		}
		if parent != "" {
			g.Edges = append(g.Edges, lattice.Edge{Caller: parent, Callee: name})
		}
	}
	root := "Shader " + s.Name
	node("", root)
	for si := range s.SubShaders {
		sub := &s.SubShaders[si]
		subName := fmt.Sprintf("SubShader%d", si)
		if sub.LOD != 0 {
			subName += fmt.Sprintf(" LOD %d", sub.LOD)
		}
		node(root, subName)

		for pi := range sub.Passes {
			p := &sub.Passes[pi]
			if p.IsUsePass() {
				node(subName, "UsePass "+p.UsePass)
				continue
			}
			passName := PassName(si, pi, p.Name())
			node(subName, passName)
			for bi := range p.Baskets {
				node(passName, basketName(&p.Baskets[bi]))
			}
		}
	}
	if s.Fallback != "" {
		node(root, "Fallback "+s.Fallback)
	}
	g.Dedup()
	return g
}
