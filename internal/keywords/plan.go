package keywords

import "unshader/internal/engine"

// Directive is the preprocessor line opening a variant's block.
type Directive int

const (
	DirNone Directive = iota
	DirIf
	DirElif
	DirElse
)

func (d Directive) String() string {
	switch d {
	case DirIf:
		return "#if"
	case DirElif:
		return "#elif"
	case DirElse:
		return "#else"
	default:
		return ""
	}
}

func (d Directive) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Step is one variant in emission order.
type Step struct {
	Variant   int          `json:"variant"` // index into the caller's variants
	Stage     engine.Stage `json:"stage"`
	Directive Directive    `json:"directive"`
	Cond      string       `json:"cond,omitempty"` // set for #if and #elif
	// DeclareStruct marks the first variant of its stage. Its input and
	// output structs are emitted once, ahead of the stage's block.
	DeclareStruct bool `json:"declare_struct"`
	// EndIf closes the stage's block after this variant.
	EndIf bool `json:"end_if"`
}

// Line renders the step's directive line, or "" for DirNone.
func (s Step) Line() string {
	switch s.Directive {
	case DirIf, DirElif:
		return s.Directive.String() + " " + s.Cond
	case DirElse:
		return "#else"
	}
	return ""
}

// Plan lays out the selected variants, in canonical order, into
// conditional blocks. Each of the vertex and fragment stages with more than
// one variant becomes one #if/#elif/#else/#endif chain whose last variant
// takes the #else. Stages with a single variant and other program types
// are emitted unconditionally.
func Plan(vs []Variant, selected []int) []Step {
	count := make(map[engine.Stage]int)
	last := make(map[engine.Stage]int)
	for pos, i := range selected {
		st := vs[i].Type.Stage()
		count[st]++
		last[st] = pos
	}

	steps := make([]Step, 0, len(selected))
	seen := make(map[engine.Stage]bool)
	for pos, i := range selected {
		st := vs[i].Type.Stage()
		s := Step{Variant: i, Stage: st}
		if st != engine.StageOther {
			s.DeclareStruct = !seen[st]
			if count[st] > 1 {
				switch {
				case pos == last[st]:
					s.Directive = DirElse
					s.EndIf = true
				case !seen[st]:
					s.Directive = DirIf
				default:
					s.Directive = DirElif
				}
				if s.Directive != DirElse {
					s.Cond = vs[i].Condition()
				}
			}
			seen[st] = true
		}
		steps = append(steps, s)
	}
	return steps
}

// Result is the full analysis of one pass.
type Result struct {
	Order     []int     `json:"order"`
	Partition Partition `json:"partition"`
	Selected  []int     `json:"selected"`
	FellBack  bool      `json:"fell_back"`
	Steps     []Step    `json:"steps"`
}

// Analyze runs ordering, partition, selection and planning over vs.
func Analyze(vs []Variant, sel []string, mode FilterMode) *Result {
	r := &Result{Order: Order(vs)}
	ordered := make([]Variant, len(r.Order))
	for pos, i := range r.Order {
		ordered[pos] = vs[i]
	}
	r.Partition = NewPartition(ordered)
	r.Selected, r.FellBack = Select(vs, r.Order, r.Partition, sel, mode)
	r.Steps = Plan(vs, r.Selected)
	return r
}
