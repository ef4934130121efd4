package shaderlab

import (
	"unshader/internal/assetfield"
	"unshader/internal/blob"
	"unshader/internal/engine"
	"unshader/internal/extract"
	"unshader/internal/hlsl"
	"unshader/internal/shaderfmt"
)

// Config drives a full reconstruction of one compiled shader object.
type Config struct {
	Platform   engine.Platform
	Version    engine.Version
	Mode       shaderfmt.Mode
	Options    Options
	Decompiler hlsl.Decompiler // nil selects hlsl.StubDecompiler
	Sink       shaderfmt.Sink
}

// Result holds every stage's product for one object.
type Result struct {
	Store  *blob.Store
	Shader *Shader
	Output *Output
}

// Reconstruct extracts the platform's blobs from obj, builds the shader
// tree and serializes it.
func Reconstruct(obj assetfield.Field, cfg Config) (*Result, error) {
	sink := cfg.Sink
	if sink == nil {
		sink = shaderfmt.Discard
	}
	store, err := extract.Extract(obj, cfg.Platform, cfg.Version)
	if err != nil {
		return nil, err
	}

	b := &Builder{Store: store, Platform: cfg.Platform, Sink: sink, Mode: cfg.Mode}
	s, err := b.Build(obj)
	if err != nil {
		return nil, err
	}

	dec := cfg.Decompiler
	if dec == nil {
		dec = hlsl.StubDecompiler{}
	}
	w := &Writer{
		Emitter: &hlsl.Emitter{
			Decompiler: dec,
			Params:     store,
			Platform:   cfg.Platform,
			Version:    cfg.Version,
			Sink:       sink,
			Mode:       cfg.Mode,
		},
		Options: cfg.Options,
	}
	out, err := w.Write(s)
	if err != nil {
		return nil, err
	}
	return &Result{Store: store, Shader: s, Output: out}, nil
}
