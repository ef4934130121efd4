package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"unshader/internal/assetfield"
	"unshader/internal/engine"
	"unshader/internal/keywords"
	"unshader/internal/shaderfmt"
	"unshader/internal/shaderlab"
)

// inputFlags are the flags shared by every command that reads a dump.
type inputFlags struct {
	in       *string
	platform *string
	version  *string
	keywords *string
	filter   *string
	strict   *bool
}

func addInputFlags(fs *flag.FlagSet) *inputFlags {
	return &inputFlags{
		in:       fs.String("in", "", "JSON dump of a compiled shader object"),
		platform: fs.String("platform", "d3d11", "shader platform name or id"),
		version:  fs.String("version", "", "engine version (default: from the dump)"),
		keywords: fs.String("keywords", "", "comma-separated keyword selection"),
		filter:   fs.String("filter", "partial", "variant filter: none, partial, exact"),
		strict:   fs.Bool("strict", false, "fail on the first broken variant"),
	}
}

// input is a parsed dump plus everything the flags resolved to.
type input struct {
	obj      assetfield.Field
	platform engine.Platform
	version  engine.Version
	mode     shaderfmt.Mode
	options  shaderlab.Options
}

func (f *inputFlags) load() (*input, error) {
	if *f.in == "" {
		return nil, errors.New("--in is required")
	}
	data, err := os.ReadFile(*f.in)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	obj, err := assetfield.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, *f.in)
	}

	in := &input{obj: obj, mode: shaderfmt.ModeBestEffort}
	if *f.strict {
		in.mode = shaderfmt.ModeStrict
	}
	if in.platform, err = engine.ParsePlatform(*f.platform); err != nil {
		return nil, err
	}
	if !in.platform.Supported() {
		return nil, errors.Errorf("platform %s has no reconstructable programs", in.platform)
	}

	tag := *f.version
	if tag == "" {
		tag = dumpVersion(obj)
	}
	if tag == "" {
		return nil, errors.New("--version is required: the dump carries no engine version")
	}
	if in.version, err = engine.ParseVersion(tag); err != nil {
		return nil, err
	}

	if in.options.Filter, err = keywords.ParseFilterMode(*f.filter); err != nil {
		return nil, err
	}
	in.options.Keywords = splitKeywords(*f.keywords)
	return in, nil
}

// dumpVersion returns the engine version recorded in the dump, if any.
func dumpVersion(obj assetfield.Field) string {
	for _, path := range []string{"m_EngineVersion", "version"} {
		if s := obj.Get(path).String(); s != "" {
			return s
		}
	}
	return ""
}

func splitKeywords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

func (in *input) reconstruct(sink shaderfmt.Sink) (*shaderlab.Result, error) {
	return shaderlab.Reconstruct(in.obj, shaderlab.Config{
		Platform: in.platform,
		Version:  in.version,
		Mode:     in.mode,
		Options:  in.options,
		Sink:     sink,
	})
}

func printDiags(diags *shaderfmt.Diags) {
	if diags.Len() == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\ndiagnostics: %d issues\n", diags.Len())
	for _, d := range diags.Items() {
		fmt.Fprintf(os.Stderr, "  %s\n", d)
	}
}
