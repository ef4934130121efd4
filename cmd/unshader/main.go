package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = cmdScan(os.Args[2:])
	case "dump":
		err = cmdDump(os.Args[2:])
	case "keywords":
		err = cmdKeywords(os.Args[2:])
	case "graph":
		err = cmdGraph(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `unshader - compiled shader to ShaderLab reconstructor

Usage:
  unshader scan     --in <dump.json> [--json]           List platform slots and blob entries
  unshader dump     --in <dump.json> [--out <dir>]      Reconstruct ShaderLab source
  unshader keywords --in <dump.json>                    Print keyword partitions per pass
  unshader graph    --in <dump.json> --out <dir>        Write structure and variant-flow DOT

Flags:
  --in <path>           JSON dump of a compiled shader object
  --platform <name|id>  Shader platform (default d3d11)
  --version <tag>       Engine version (default: from the dump)
  --keywords A,B        Keyword selection
  --filter <mode>       none, partial (default) or exact
  --out <dir>           Output directory
  --strict              Fail on the first broken variant
  --json                Machine-readable output
`)
}
