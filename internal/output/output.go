// Package output writes unshader results to files.
package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"unshader/internal/blob"
	"unshader/internal/shaderfmt"
	"unshader/internal/shaderlab"
)

// Manifest summarizes one reconstruction: where the input came from, what
// the blob store held and what each pass's program block selected.
type Manifest struct {
	Input    string                 `json:"input"`
	Shader   string                 `json:"shader"`
	Platform string                 `json:"platform"`
	Version  string                 `json:"version"`
	Layout   string                 `json:"layout"`
	Entries  []blob.Entry           `json:"entries"`
	Passes   []shaderlab.PassResult `json:"passes"`
	Diags    []shaderfmt.Diag       `json:"diags"`
}

// FileName turns a shader name such as "Hidden/Internal-Colored" into a
// file name, keeping the path-like separators as directories.
func FileName(shader string) string {
	if shader == "" {
		return "unnamed"
	}
	parts := strings.Split(shader, "/")
	for i, p := range parts {
		p = strings.Map(func(r rune) rune {
			switch r {
			case '\\', ':', '*', '?', '"', '<', '>', '|':
				return '_'
			}
			return r
		}, strings.TrimSpace(p))
		if p == "" || p == "." || p == ".." {
			p = "_"
		}
		parts[i] = p
	}
	return filepath.Join(parts...)
}

// WriteShader writes text to <dir>/<FileName(name)>.shader and returns the path.
func WriteShader(dir, name, text string) (string, error) {
	path := filepath.Join(dir, FileName(name)+".shader")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, "output: mkdir")
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", errors.Wrapf(err, "output: write %s", path)
	}
	return path, nil
}

// WriteManifestJSON writes m to manifest.json.
func WriteManifestJSON(dir string, m *Manifest) error {
	return writeJSON(filepath.Join(dir, "manifest.json"), m)
}

// WriteDOT writes a rendered graph to <dir>/<name>.dot.
func WriteDOT(dir, name, dot string) error {
	path := filepath.Join(dir, name+".dot")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "output: mkdir")
	}
	return errors.Wrapf(os.WriteFile(path, []byte(dot), 0644), "output: write %s", path)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "output: create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "output: encode %s", path)
	}
	return nil
}
