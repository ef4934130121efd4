package assetfield

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const dump = `{
  "m_ParsedForm": {
    "m_Name": "Custom/Glow",
    "m_PropInfo": {"m_Props": {"Array": [
      {"m_Name": "_Color", "m_DefValue[0]": 1, "m_DefValue[1]": 0.5, "m_Flags": 16},
      {"m_Name": "_Range", "m_DefValue": [0.25, 0, 1, 0]}
    ]}}
  },
  "platforms": [4, 19],
  "offsets": {"Array": [{"Array": [0, 128]}, {"Array": [256]}]},
  "compressedBlob": [1, 2, 255],
  "encodedBlob": "AQL/",
  "zTest.val": 7,
  "state": {"zTest": {"val": 4}, "lighting": true}
}`

func mustParse(t *testing.T) Field {
	t.Helper()
	f, err := FromString(dump)
	require.NoError(t, err)
	return f
}

func TestGetPaths(t *testing.T) {
	f := mustParse(t)
	tests := []struct {
		path string
		want float64
	}{
		{"state.zTest.val", 4},
		{"platforms.Array.1", 19},
		{"platforms.1", 19},
		{"offsets.Array.0.Array.1", 128},
		{"m_ParsedForm.m_PropInfo.m_Props.Array.0.m_DefValue[1]", 0.5},
		{"m_ParsedForm.m_PropInfo.m_Props.Array.1.m_DefValue[0]", 0.25},
		{"m_ParsedForm.m_PropInfo.m_Props.Array.1.m_DefValue[2]", 1},
		{"m_ParsedForm.m_PropInfo.m_Props.Array.1.m_DefValue[9]", 0},
		{"missing.deeper", 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, f.Get(tt.path).Float())
		})
	}
}

func TestGetEscapesKeys(t *testing.T) {
	f := mustParse(t)
	// A dotted path never matches the literal "zTest.val" key at the root.
	require.False(t, f.Get("zTest").Exists())
	require.True(t, f.Get("state").Get("lighting").Bool())
	require.Equal(t, "", f.Get("state.lighting").String())
}

func TestStringAndInts(t *testing.T) {
	f := mustParse(t)
	require.Equal(t, "Custom/Glow", f.Get("m_ParsedForm.m_Name").String())
	props := f.Get("m_ParsedForm.m_PropInfo.m_Props.Array").Array()
	require.Len(t, props, 2)
	require.Equal(t, uint64(16), props[0].Get("m_Flags").Uint())
	require.Equal(t, int64(0), props[1].Get("m_Flags").Int())
	require.Equal(t, "", props[0].Get("m_Flags").String())
}

func TestArrayForms(t *testing.T) {
	f := mustParse(t)
	var segs [][]uint64
	for _, slot := range f.Get("offsets.Array").Array() {
		var s []uint64
		for _, v := range slot.Get("Array").Array() {
			s = append(s, v.Uint())
		}
		segs = append(segs, s)
	}
	require.Equal(t, [][]uint64{{0, 128}, {256}}, segs)
	require.Len(t, f.Get("platforms").Array(), 2)
	require.Nil(t, f.Get("nothing").Array())
}

func TestBytes(t *testing.T) {
	f := mustParse(t)
	for _, path := range []string{"compressedBlob", "compressedBlob.Array", "encodedBlob", "encodedBlob.Array"} {
		b, err := f.Get(path).Bytes()
		require.NoError(t, err, path)
		require.Equal(t, []byte{1, 2, 255}, b, path)
	}

	b, err := f.Get("absent").Bytes()
	require.NoError(t, err)
	require.Empty(t, b)

	_, err = f.Get("m_ParsedForm.m_Name").Bytes()
	require.True(t, errors.Is(err, ErrNotBytes))

	_, err = f.Get("offsets").Bytes()
	require.True(t, errors.Is(err, ErrNotBytes))
}

func TestParseInvalid(t *testing.T) {
	_, err := FromString(`{"a":`)
	require.True(t, errors.Is(err, ErrInvalidJSON))
}
