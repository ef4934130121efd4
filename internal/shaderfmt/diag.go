// Package shaderfmt provides shared types, diagnostics and the binary stream
// reader used while reconstructing compiled shaders.
package shaderfmt

import "fmt"

// DiagKind classifies a diagnostic message.
type DiagKind string

const (
	DiagTruncated  DiagKind = "truncated"
	DiagInvalid    DiagKind = "invalid"
	DiagDecompile  DiagKind = "decompile"
	DiagUnresolved DiagKind = "unresolved"
)

// Diag records a non-fatal issue. Index is the blob index the issue is
// about, or -1 when none applies.
type Diag struct {
	Index int      `json:"index"`
	Kind  DiagKind `json:"kind"`
	Msg   string   `json:"msg"`
}

func (d Diag) String() string {
	if d.Index < 0 {
		return fmt.Sprintf("[%s] %s", d.Kind, d.Msg)
	}
	return fmt.Sprintf("[%s] blob %d: %s", d.Kind, d.Index, d.Msg)
}

// Sink receives non-fatal, per-variant failures.
type Sink interface {
	Addf(index int, kind DiagKind, format string, args ...any)
}

// Diags accumulates diagnostics. The zero value is ready to use.
type Diags struct {
	items []Diag
}

func (d *Diags) Add(index int, kind DiagKind, msg string) {
	d.items = append(d.items, Diag{Index: index, Kind: kind, Msg: msg})
}

func (d *Diags) Addf(index int, kind DiagKind, format string, args ...any) {
	d.items = append(d.items, Diag{Index: index, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Addf(int, DiagKind, string, ...any) {}

// Mode controls error handling behavior.
type Mode int

const (
	ModeBestEffort Mode = iota // record per-variant failures, keep going
	ModeStrict                 // first per-variant failure is fatal
)
