package extract

import (
	"encoding/json"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"unshader/internal/assetfield"
	"unshader/internal/blob"
	"unshader/internal/blob/blobtest"
	"unshader/internal/engine"
	"unshader/internal/shaderfmt"
)

var v2021 = engine.MustParseVersion("2021.3.5f1")

type fixtureSlot struct {
	platform engine.Platform
	segments [][]byte
}

type arr[T any] struct {
	Array []T `json:"Array"`
}

// fixture compresses each segment of each slot to one blob and returns the
// compiled-object JSON in the explicit "Array" form.
func fixture(t *testing.T, slots []fixtureSlot, mutate func(obj map[string]any)) assetfield.Field {
	t.Helper()
	var blobBytes []byte
	var platforms []int32
	var offsets, clens, dlens []arr[uint32]
	for _, s := range slots {
		platforms = append(platforms, int32(s.platform))
		var o, c, d arr[uint32]
		for _, seg := range s.segments {
			dst := make([]byte, lz4.CompressBlockBound(len(seg)))
			n, err := lz4.CompressBlock(seg, dst, nil)
			require.NoError(t, err)
			require.NotZero(t, n, "segment must be compressible")
			o.Array = append(o.Array, uint32(len(blobBytes)))
			c.Array = append(c.Array, uint32(n))
			d.Array = append(d.Array, uint32(len(seg)))
			blobBytes = append(blobBytes, dst[:n]...)
		}
		offsets, clens, dlens = append(offsets, o), append(clens, c), append(dlens, d)
	}
	obj := map[string]any{
		"platforms":           arr[int32]{platforms},
		"offsets":             arr[arr[uint32]]{offsets},
		"compressedLengths":   arr[arr[uint32]]{clens},
		"decompressedLengths": arr[arr[uint32]]{dlens},
		"compressedBlob":      blobBytes, // base64 when marshaled
	}
	if mutate != nil {
		mutate(obj)
	}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	f, err := assetfield.Parse(data)
	require.NoError(t, err)
	return f
}

// storeSegments builds real blob segments padded so LZ4 can compress them.
func storeSegments(records ...string) [][]byte {
	c := blobtest.NewContainer(blob.LayoutFor(v2021), 2)
	for i, r := range records {
		c.Add(i%2, []byte(r))
	}
	segs := c.Segments()
	for i := range segs {
		segs[i] = append(segs[i], make([]byte, 256)...)
	}
	return segs
}

func TestExtractSelectsPlatform(t *testing.T) {
	obj := fixture(t, []fixtureSlot{
		{platform: engine.PlatformGLES3Plus, segments: storeSegments("gles-a", "gles-b")},
		{platform: engine.PlatformD3D11, segments: storeSegments("d3d-a", "d3d-b", "d3d-c")},
	}, nil)

	st, err := Extract(obj, engine.PlatformD3D11, v2021)
	require.NoError(t, err)
	require.Equal(t, 3, st.Len())
	require.Equal(t, 2, st.Segments())

	for i, want := range []string{"d3d-a", "d3d-b", "d3d-c"} {
		got, err := st.Read(i)
		require.NoError(t, err)
		require.Equal(t, want, string(got))
	}
}

func TestReadContainer(t *testing.T) {
	obj := fixture(t, []fixtureSlot{
		{platform: engine.PlatformD3D11, segments: storeSegments("a")},
		{platform: engine.PlatformSwitch, segments: storeSegments("b", "c")},
	}, nil)
	c, err := ReadContainer(obj)
	require.NoError(t, err)
	require.Equal(t, []engine.Platform{engine.PlatformD3D11, engine.PlatformSwitch}, c.Platforms())
	require.Len(t, c.Slots[1].Segments, 2)
	require.Equal(t, c.Slots[0].Segments[1].Offset+c.Slots[0].Segments[1].CompressedLength, c.Slots[1].Segments[0].Offset)
}

func TestExtractPlatformNotFound(t *testing.T) {
	obj := fixture(t, []fixtureSlot{
		{platform: engine.PlatformD3D11, segments: storeSegments("a")},
	}, nil)
	_, err := Extract(obj, engine.PlatformVulkan, v2021)
	require.True(t, errors.Is(err, shaderfmt.ErrPlatformNotFound), "got %v", err)
}

func TestExtractDecompressFailureIsFatal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(obj map[string]any)
		want   error
	}{
		{
			name: "garbage block",
			mutate: func(obj map[string]any) {
				obj["compressedBlob"] = []int{0xf0, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
				obj["offsets"] = arr[arr[uint32]]{[]arr[uint32]{{[]uint32{0, 0}}}}
				obj["compressedLengths"] = arr[arr[uint32]]{[]arr[uint32]{{[]uint32{8, 8}}}}
			},
			want: shaderfmt.ErrDecompress,
		},
		{
			name: "declared length too long",
			mutate: func(obj map[string]any) {
				d := obj["decompressedLengths"].(arr[arr[uint32]])
				d.Array[0].Array[1] += 64
			},
			want: shaderfmt.ErrDecompress,
		},
		{
			name: "segment past blob end",
			mutate: func(obj map[string]any) {
				c := obj["compressedLengths"].(arr[arr[uint32]])
				c.Array[0].Array[1] += 1 << 20
			},
			want: shaderfmt.ErrCorruptData,
		},
		{
			name: "parallel arrays disagree",
			mutate: func(obj map[string]any) {
				obj["offsets"] = arr[arr[uint32]]{}
			},
			want: shaderfmt.ErrCorruptData,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := fixture(t, []fixtureSlot{
				{platform: engine.PlatformD3D11, segments: storeSegments("a", "b")},
			}, tt.mutate)
			st, err := Extract(obj, engine.PlatformD3D11, v2021)
			require.Nil(t, st)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestExtractFlattenedArrays(t *testing.T) {
	segs := storeSegments("only")
	var blobBytes []byte
	var offs, clens, dlens []uint32
	for _, seg := range segs {
		dst := make([]byte, lz4.CompressBlockBound(len(seg)))
		n, err := lz4.CompressBlock(seg, dst, nil)
		require.NoError(t, err)
		offs = append(offs, uint32(len(blobBytes)))
		clens = append(clens, uint32(n))
		dlens = append(dlens, uint32(len(seg)))
		blobBytes = append(blobBytes, dst[:n]...)
	}
	nums := make([]int, len(blobBytes))
	for i, b := range blobBytes {
		nums[i] = int(b)
	}
	data, err := json.Marshal(map[string]any{
		"platforms":           []int{4},
		"offsets":             [][]uint32{offs},
		"compressedLengths":   [][]uint32{clens},
		"decompressedLengths": [][]uint32{dlens},
		"compressedBlob":      nums,
	})
	require.NoError(t, err)
	obj, err := assetfield.Parse(data)
	require.NoError(t, err)

	st, err := Extract(obj, engine.PlatformD3D11, v2021)
	require.NoError(t, err)
	got, err := st.Read(0)
	require.NoError(t, err)
	require.Equal(t, "only", string(got))
}
