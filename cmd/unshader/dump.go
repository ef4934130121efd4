package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"unshader/internal/output"
	"unshader/internal/shaderfmt"
)

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	inf := addInputFlags(fs)
	outDir := fs.String("out", "", "output directory (default: print to stdout)")
	jsonOut := fs.Bool("json", false, "also write manifest.json (requires --out)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jsonOut && *outDir == "" {
		return errors.New("--json requires --out")
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
	fmt.Fprintf(os.Stderr, "%s: %d entries, layout %s, %d passes with programs\n",
		res.Shader.Name, res.Store.Len(), res.Store.Layout().Name, len(res.Output.Passes))

	if *outDir == "" {
		fmt.Print(res.Output.Text)
		printDiags(&diags)
		return nil
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	path, err := output.WriteShader(*outDir, res.Shader.Name, res.Output.Text)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)

	if *jsonOut {
		m := &output.Manifest{
			Input:    *inf.in,
			Shader:   res.Shader.Name,
			Platform: in.platform.String(),
			Version:  in.version.String(),
			Layout:   res.Store.Layout().Name,
			Entries:  res.Store.Entries(),
			Passes:   res.Output.Passes,
			Diags:    diags.Items(),
		}
		if err := output.WriteManifestJSON(*outDir, m); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s/manifest.json\n", *outDir)
	}

	printDiags(&diags)
	return nil
}
