package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"unshader/internal/graph"
	"unshader/internal/keywords"
	"unshader/internal/shaderfmt"
)

func cmdKeywords(args []string) error {
	fs := flag.NewFlagSet("keywords", flag.ExitOnError)
	inf := addInputFlags(fs)
	jsonOut := fs.Bool("json", false, "output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
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

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Output.Passes)
	}

	for _, pr := range res.Output.Passes {
		fmt.Printf("%s: %d baskets, %d absent\n", graph.PassName(pr.SubShader, pr.Pass, pr.Name), pr.Baskets, pr.Absent)
		b := pr.Block
		if b == nil || b.Analysis == nil {
			fmt.Println("  no programs")
			continue
		}
		for _, p := range b.Analysis.Partition.Pragmas() {
			fmt.Printf("  %s\n", p)
		}
		if b.Analysis.FellBack {
			fmt.Println("  selection matched nothing; all variants kept")
		}
		for _, step := range b.Analysis.Steps {
			v := b.Variants[step.Variant]
			fmt.Printf("  %-8s blob %-5d %-16s %s\n",
				directive(step), b.Blobs[step.Variant], v.Type, strings.Join(v.Sorted(), " "))
		}
		for _, idx := range b.Skipped {
			fmt.Printf("  skipped  blob %d\n", idx)
		}
	}
	printDiags(&diags)
	return nil
}

func directive(s keywords.Step) string {
	if s.Directive == keywords.DirNone {
		return "-"
	}
	return s.Directive.String()
}
