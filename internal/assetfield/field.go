// Package assetfield gives typed, path-based access to a serialized engine
// object exported as JSON.
//
// Paths use the engine's dotted field syntax: "m_ParsedForm.m_Name",
// "platforms.Array", "m_DefValue[0]". An "Array" segment is accepted both
// for dumps that keep the type tree's explicit array node
// ({"platforms": {"Array": [...]}}) and for dumps that flatten it
// ({"platforms": [...]}).
package assetfield

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("assetfield: invalid JSON")
	ErrNotBytes    = errors.New("assetfield: field is not a byte array")
)

// Field is one node of the serialized object. Missing fields behave like
// zero values: numeric getters return 0, String returns "", Array returns nil.
type Field interface {
	Get(path string) Field
	Exists() bool
	Int() int64
	Uint() uint64
	Float() float64
	Bool() bool
	String() string
	Bytes() ([]byte, error)
	Array() []Field
}

// Parse parses a JSON dump and returns its root field.
func Parse(data []byte) (Field, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return node{gjson.ParseBytes(data)}, nil
}

// FromString is Parse for literal JSON, mostly in tests.
func FromString(s string) (Field, error) { return Parse([]byte(s)) }

type node struct {
	r gjson.Result
}

func (n node) Get(path string) Field {
	cur := n.r
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}
		cur = step(cur, seg)
		if !cur.Exists() {
			break
		}
	}
	return node{cur}
}

// step resolves one path segment below r.
func step(r gjson.Result, seg string) gjson.Result {
	if seg == "Array" {
		// Flattened dumps store byte arrays as base64 strings.
		if !r.IsObject() {
			return r
		}
		return r.Get("Array")
	}
	if r.IsArray() {
		if _, err := strconv.Atoi(seg); err == nil {
			return r.Get(seg)
		}
	}
	if v := r.Get(escape(seg)); v.Exists() {
		return v
	}
	// "m_DefValue[0]" addresses element 0 of m_DefValue when the dump
	// stores the fixed-size array as a JSON array.
	if open := strings.IndexByte(seg, '['); open > 0 && strings.HasSuffix(seg, "]") {
		i, err := strconv.Atoi(seg[open+1 : len(seg)-1])
		if err != nil || i < 0 {
			return gjson.Result{}
		}
		arr := r.Get(escape(seg[:open]))
		if arr.IsObject() {
			arr = arr.Get("Array")
		}
		if !arr.IsArray() {
			return gjson.Result{}
		}
		return arr.Get(strconv.Itoa(i))
	}
	return gjson.Result{}
}

// escape quotes gjson path syntax inside one literal key.
func escape(key string) string {
	var b strings.Builder
	for _, c := range key {
		switch c {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (n node) Exists() bool { return n.r.Exists() }

func (n node) Int() int64 { return n.r.Int() }

func (n node) Uint() uint64 { return n.r.Uint() }

func (n node) Float() float64 { return n.r.Float() }

func (n node) Bool() bool { return n.r.Bool() }

func (n node) String() string {
	if n.r.Type != gjson.String {
		return ""
	}
	return n.r.String()
}

// Bytes decodes a byte array stored either as a JSON array of numbers or
// as a base64 string. A missing field yields an empty slice.
func (n node) Bytes() ([]byte, error) {
	r := n.r
	if r.IsObject() {
		r = r.Get("Array")
	}
	switch {
	case !r.Exists():
		return nil, nil
	case r.Type == gjson.String:
		b, err := base64.StdEncoding.DecodeString(r.Str)
		if err != nil {
			return nil, errors.Wrap(ErrNotBytes, err.Error())
		}
		return b, nil
	case r.IsArray():
		var out []byte
		var bad error
		r.ForEach(func(_, v gjson.Result) bool {
			if v.Type != gjson.Number || v.Num < 0 || v.Num > 255 {
				bad = errors.Wrapf(ErrNotBytes, "element %s", v.Raw)
				return false
			}
			out = append(out, byte(v.Num))
			return true
		})
		if bad != nil {
			return nil, bad
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrNotBytes, "got %s", r.Type)
	}
}

func (n node) Array() []Field {
	r := n.r
	if r.IsObject() {
		r = r.Get("Array")
	}
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([]Field, len(items))
	for i, it := range items {
		out[i] = node{it}
	}
	return out
}
