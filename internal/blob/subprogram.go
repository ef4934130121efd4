package blob

import (
	"unshader/internal/engine"
	"unshader/internal/shaderfmt"
)

// SubProgram is one compiled GPU program variant.
type SubProgram struct {
	FormatVersion  int32              `json:"format_version"`
	Type           engine.ProgramType `json:"type"`
	Stats          [4]int32           `json:"stats"` // ALU, TEX, flow, temp registers
	GlobalKeywords []string           `json:"global_keywords"`
	LocalKeywords  []string           `json:"local_keywords"`
	Program        []byte             `json:"-"`
	Params         ShaderParams       `json:"params"`
}

// Keywords returns global then local keywords.
func (p *SubProgram) Keywords() []string {
	out := make([]string, 0, len(p.GlobalKeywords)+len(p.LocalKeywords))
	out = append(out, p.GlobalKeywords...)
	return append(out, p.LocalKeywords...)
}

// Sub-program layout:
//
//	+0x00: formatVersion  int32 (compiler serialization version, e.g. 201806140)
//	+0x04: programType    int32
//	+0x08: stats          4 x int32
//	+0x18: globalKeywords string array
//	       [localKeywords string array]
//	       program        byte array (aligned)
//	       params         parameter block
func readSubProgram(s *shaderfmt.Stream, l *Layout) (*SubProgram, error) {
	var p SubProgram
	var typ int32
	if err := readInts(s, &p.FormatVersion, &typ, &p.Stats[0], &p.Stats[1], &p.Stats[2], &p.Stats[3]); err != nil {
		return nil, err
	}
	p.Type = engine.ProgramType(typ)

	var err error
	if p.GlobalKeywords, err = s.ReadStringArray(); err != nil {
		return nil, err
	}
	if l.LocalKeywords {
		if p.LocalKeywords, err = s.ReadStringArray(); err != nil {
			return nil, err
		}
	}
	if p.Program, err = s.ReadByteArray(); err != nil {
		return nil, err
	}
	params, err := readShaderParams(s, l)
	if err != nil {
		return nil, err
	}
	p.Params = *params
	return &p, nil
}
