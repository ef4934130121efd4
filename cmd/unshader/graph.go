package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"unshader/internal/graph"
	"unshader/internal/output"
	"unshader/internal/shaderfmt"
)

func cmdGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	inf := addInputFlags(fs)
	outDir := fs.String("out", "", "output directory")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outDir == "" {
		return errors.New("--out is required")
	}
	in, err := inf.load()
	if err != nil {
		return err
	}

	var diags shaderfmt.Diags
	res, err := in.reconstruct(&diags)
	if err != nil {
		printDiags(&diags)
		return errors.Wrap(err, "reconstruct")
	}

	g := graph.Structure(res.Shader)
	if err := output.WriteDOT(*outDir, "structure", render.DOT(g, res.Shader.Name)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s/structure.dot (%d nodes, %d edges)\n", *outDir, len(g.Nodes), len(g.Edges))

	flow := graph.Flow(res.Output)
	for _, f := range flow.Funcs {
		one := &lattice.CFGGraph{Funcs: []*lattice.FuncCFG{f}}
		name := filepath.Join("flow", output.FileName(f.Name))
		if err := output.WriteDOT(*outDir, name, render.DOTCFG(one, f.Name)); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "wrote %d pass flow graphs to %s/flow\n", len(flow.Funcs), *outDir)

	printDiags(&diags)
	return nil
}
