package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"unshader/internal/engine"
	"unshader/internal/keywords"
	"unshader/internal/shaderfmt"
)

func writeDump(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func parseInput(t *testing.T, args ...string) (*input, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	inf := addInputFlags(fs)
	require.NoError(t, fs.Parse(args))
	return inf.load()
}

func TestLoadDefaults(t *testing.T) {
	path := writeDump(t, `{"m_EngineVersion": "2021.3.5f1"}`)
	in, err := parseInput(t, "--in", path)
	require.NoError(t, err)
	require.Equal(t, engine.PlatformD3D11, in.platform)
	require.Equal(t, engine.MustParseVersion("2021.3.5f1"), in.version)
	require.Equal(t, shaderfmt.ModeBestEffort, in.mode)
	require.Equal(t, keywords.FilterPartial, in.options.Filter)
	require.Empty(t, in.options.Keywords)
}

func TestLoadFlags(t *testing.T) {
	path := writeDump(t, `{"version": "2019.4.0f1"}`)
	in, err := parseInput(t, "--in", path, "--platform", "switch", "--version", "2022.1.0f1",
		"--keywords", "FOG_LINEAR, SHADOWS_SCREEN", "--filter", "exact", "--strict")
	require.NoError(t, err)
	require.Equal(t, engine.PlatformSwitch, in.platform)
	require.Equal(t, engine.MustParseVersion("2022.1.0f1"), in.version)
	require.Equal(t, shaderfmt.ModeStrict, in.mode)
	require.Equal(t, keywords.FilterExact, in.options.Filter)
	require.Equal(t, []string{"FOG_LINEAR", "SHADOWS_SCREEN"}, in.options.Keywords)
}

func TestLoadErrors(t *testing.T) {
	noVersion := writeDump(t, `{}`)
	versioned := writeDump(t, `{"version": "2021.3.5f1"}`)

	_, err := parseInput(t)
	require.Error(t, err)

	_, err = parseInput(t, "--in", noVersion)
	require.ErrorContains(t, err, "--version is required")

	_, err = parseInput(t, "--in", versioned, "--platform", "dreamcast")
	require.True(t, errors.Is(err, engine.ErrUnknownPlatform))

	_, err = parseInput(t, "--in", versioned, "--platform", "metal")
	require.ErrorContains(t, err, "no reconstructable programs")

	_, err = parseInput(t, "--in", versioned, "--filter", "fuzzy")
	require.True(t, errors.Is(err, keywords.ErrBadFilterMode))

	_, err = parseInput(t, "--in", writeDump(t, `{"a":`))
	require.Error(t, err)
}

func TestSplitKeywords(t *testing.T) {
	require.Empty(t, splitKeywords(""))
	require.Equal(t, []string{"A", "B", "C"}, splitKeywords("A,B , C,,"))
}
