package blob_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"unshader/internal/blob"
	"unshader/internal/blob/blobtest"
	"unshader/internal/engine"
	"unshader/internal/shaderfmt"
)

var (
	v2021 = engine.MustParseVersion("2021.3.5f1")
	v2019 = engine.MustParseVersion("2019.4.0f1")
	v2018 = engine.MustParseVersion("2018.4.36f1")
)

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"2022.3.10f1", "2021.2"},
		{"2021.2.0a1", "2021.2"},
		{"2021.2.0b5", "2021.2"},
		{"2019.3.0b1", "2019.3"},
		{"2017.3.0x2", "2017.3"},
		{"2017.2.5f1", "5.5"},
		{"2021.1.28f1", "2019.3"},
		{"2019.3.0f6", "2019.3"},
		{"2018.4.36f1", "2017.3"},
		{"5.6.7f1", "5.5"},
		{"4.7.2f1", "5.5"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			l := blob.LayoutFor(engine.MustParseVersion(tt.version))
			require.Equal(t, tt.want, l.Name)
		})
	}
}

func TestStoreReadAcrossSegments(t *testing.T) {
	for _, v := range []engine.Version{v2021, v2019} {
		t.Run(v.String(), func(t *testing.T) {
			c := blobtest.NewContainer(blob.LayoutFor(v), 2)
			a := c.Add(0, []byte("first record"))
			b := c.Add(1, []byte("second"))
			d := c.Add(1, []byte{})

			st, err := blob.NewStore(c.Segments(), v)
			require.NoError(t, err)
			require.Equal(t, 3, st.Len())
			require.Equal(t, 2, st.Segments())

			got, err := st.Read(a)
			require.NoError(t, err)
			require.Equal(t, "first record", string(got))

			got, err = st.Read(b)
			require.NoError(t, err)
			require.Equal(t, "second", string(got))
			require.Equal(t, 1, st.Entries()[b].Segment)

			got, err = st.Read(d)
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
}

func TestStoreReadIdempotent(t *testing.T) {
	c := blobtest.NewContainer(blob.LayoutFor(v2021), 1)
	i := c.Add(0, []byte{1, 2, 3, 4, 5})
	st, err := blob.NewStore(c.Segments(), v2021)
	require.NoError(t, err)

	first, err := st.Read(i)
	require.NoError(t, err)
	require.Len(t, first, 5)
	first[0] = 0xff // callers own the returned slice

	second, err := st.Read(i)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, second)
}

func TestStoreLegacyLayoutHasNoSegmentField(t *testing.T) {
	l := blob.LayoutFor(v2018)
	require.Equal(t, 8, l.EntrySize())

	c := blobtest.NewContainer(l, 1)
	c.Add(0, []byte("abc"))
	c.Add(0, []byte("defg"))
	segs := c.Segments()
	require.Len(t, segs[0], 4+2*8+7)

	st, err := blob.NewStore(segs, v2018)
	require.NoError(t, err)
	got, err := st.Read(1)
	require.NoError(t, err)
	require.Equal(t, "defg", string(got))
}

func TestStoreOutOfRange(t *testing.T) {
	c := blobtest.NewContainer(blob.LayoutFor(v2021), 1)
	c.Add(0, []byte("x"))
	st, err := blob.NewStore(c.Segments(), v2021)
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 100} {
		_, err := st.Read(idx)
		require.True(t, errors.Is(err, shaderfmt.ErrOutOfRange), "index %d: %v", idx, err)
	}
}

func TestStoreEntryPastSegmentEndIsCorrupt(t *testing.T) {
	c := blobtest.NewContainer(blob.LayoutFor(v2021), 2)
	c.Add(1, []byte("0123456789"))
	bad := c.AddEntry(blob.Entry{Segment: 1, Offset: 4, Length: 7})
	badSeg := c.AddEntry(blob.Entry{Segment: 5, Offset: 0, Length: 1})

	st, err := blob.NewStore(c.Segments(), v2021)
	require.NoError(t, err)

	got, err := st.Read(bad)
	require.Nil(t, got)
	require.True(t, errors.Is(err, shaderfmt.ErrCorruptData), "got %v", err)

	_, err = st.Read(badSeg)
	require.True(t, errors.Is(err, shaderfmt.ErrCorruptData), "got %v", err)
}

func TestNewStoreTruncatedTable(t *testing.T) {
	var w blobtest.Buffer
	w.I32(3)
	w.U32(0)
	w.U32(4)

	_, err := blob.NewStore([][]byte{w.Bytes()}, v2021)
	require.True(t, errors.Is(err, shaderfmt.ErrCorruptData), "got %v", err)

	_, err = blob.NewStore(nil, v2021)
	require.True(t, errors.Is(err, shaderfmt.ErrCorruptData), "got %v", err)
}

func sampleSubProgram() *blob.SubProgram {
	return &blob.SubProgram{
		FormatVersion:  201806140,
		Type:           engine.ProgramDX11PixelSM40,
		Stats:          [4]int32{12, 2, 0, 3},
		GlobalKeywords: []string{"FOG_LINEAR", "SHADOWS_SCREEN"},
		LocalKeywords:  []string{"_EMISSION"},
		Program:        []byte{0x44, 0x58, 0x42, 0x43, 0, 1, 2},
		Params: blob.ShaderParams{
			Textures: []blob.TextureParam{{Name: "_MainTex", Index: 0, SamplerIndex: 0, Dim: 2}},
			ConstantBuffers: []blob.ConstantBuffer{{
				Name: blob.GlobalsBuffer,
				Vectors: []blob.VectorParam{
					{Name: "_Color", Index: 16, Dim: 4},
					{Name: "_Cutoff", Index: 32, Dim: 1},
				},
				Matrices: []blob.MatrixParam{{Name: "_Proj", Index: 48, RowCount: 4, ColumnCount: 4}},
				Size:     112,
			}},
			CBBindings: []blob.BufferParam{{Name: blob.GlobalsBuffer, Index: 0}},
			Samplers:   []blob.SamplerParam{{Sampler: 0x40, BindPoint: 0}},
		},
	}
}

func TestReadSubProgramRoundTrip(t *testing.T) {
	want := sampleSubProgram()
	l := blob.LayoutFor(v2021)
	c := blobtest.NewContainer(l, 1)
	i := c.Add(0, blobtest.SubProgram(want, l))

	st, err := blob.NewStore(c.Segments(), v2021)
	require.NoError(t, err)
	got, err := st.ReadSubProgram(i)
	require.NoError(t, err)

	require.Equal(t, want.Type, got.Type)
	require.Equal(t, want.Stats, got.Stats)
	require.Equal(t, []string{"FOG_LINEAR", "SHADOWS_SCREEN", "_EMISSION"}, got.Keywords())
	require.Equal(t, want.Program, got.Program)
	require.Equal(t, want.Params.Textures, got.Params.Textures)
	require.Equal(t, want.Params.ConstantBuffers, got.Params.ConstantBuffers)
	require.Equal(t, want.Params.Samplers, got.Params.Samplers)
}

func TestReadSubProgramPrerelease(t *testing.T) {
	beta := engine.MustParseVersion("2021.2.0b5")
	want := sampleSubProgram()
	c := blobtest.NewContainer(blob.LayoutFor(v2021), 1)
	i := c.Add(0, blobtest.SubProgram(want, blob.LayoutFor(v2021)))

	st, err := blob.NewStore(c.Segments(), beta)
	require.NoError(t, err)
	got, err := st.ReadSubProgram(i)
	require.NoError(t, err)
	require.Equal(t, want.Params.ConstantBuffers, got.Params.ConstantBuffers)
	require.Equal(t, want.Program, got.Program)
}

func TestReadSubProgramLegacyDropsLocalKeywords(t *testing.T) {
	p := sampleSubProgram()
	l := blob.LayoutFor(v2018)
	c := blobtest.NewContainer(l, 1)
	i := c.Add(0, blobtest.SubProgram(p, l))

	st, err := blob.NewStore(c.Segments(), v2018)
	require.NoError(t, err)
	got, err := st.ReadSubProgram(i)
	require.NoError(t, err)
	require.Empty(t, got.LocalKeywords)
	require.Equal(t, p.GlobalKeywords, got.Keywords())
}

func TestReadSubProgramTruncatedIsCorrupt(t *testing.T) {
	l := blob.LayoutFor(v2021)
	full := blobtest.SubProgram(sampleSubProgram(), l)
	c := blobtest.NewContainer(l, 1)
	i := c.Add(0, full[:len(full)/2])

	st, err := blob.NewStore(c.Segments(), v2021)
	require.NoError(t, err)
	_, err = st.ReadSubProgram(i)
	require.True(t, errors.Is(err, shaderfmt.ErrCorruptData), "got %v", err)
}

func TestReadShaderParams(t *testing.T) {
	l := blob.LayoutFor(v2019)
	want := sampleSubProgram().Params
	c := blobtest.NewContainer(l, 1)
	i := c.Add(0, blobtest.Params(&want, l))

	st, err := blob.NewStore(c.Segments(), v2019)
	require.NoError(t, err)
	got, err := st.ReadShaderParams(i)
	require.NoError(t, err)
	require.Equal(t, want.ConstantBuffers, got.ConstantBuffers)
	require.Equal(t, want.CBBindings, got.CBBindings)
}

func FuzzNewStore(f *testing.F) {
	c := blobtest.NewContainer(blob.LayoutFor(v2021), 1)
	c.Add(0, []byte("seed"))
	f.Add(c.Segments()[0])
	f.Add([]byte{})
	f.Add([]byte{0xff, 0xff, 0xff, 0x7f})

	f.Fuzz(func(t *testing.T, data []byte) {
		st, err := blob.NewStore([][]byte{data}, v2021)
		if err != nil {
			return
		}
		// Must not panic.
		for i := 0; i < st.Len(); i++ {
			st.Read(i)
			st.ReadSubProgram(i)
		}
	})
}
