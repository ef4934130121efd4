package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownPlatform is returned by ParsePlatform for unrecognized names.
var ErrUnknownPlatform = errors.New("engine: unknown platform")

// Platform is the shader compiler platform id stored in a compiled shader's
// platforms array.
type Platform int32

const (
	PlatformNone             Platform = -1
	PlatformGL               Platform = 0
	PlatformD3D9             Platform = 1
	PlatformXbox360          Platform = 2
	PlatformPS3              Platform = 3
	PlatformD3D11            Platform = 4
	PlatformGLES20           Platform = 5
	PlatformNaCl             Platform = 6
	PlatformFlash            Platform = 7
	PlatformD3D11_9x         Platform = 8
	PlatformGLES3Plus        Platform = 9
	PlatformPSP2             Platform = 10
	PlatformPS4              Platform = 11
	PlatformXboxOne          Platform = 12
	PlatformPSM              Platform = 13
	PlatformMetal            Platform = 14
	PlatformOpenGLCore       Platform = 15
	PlatformN3DS             Platform = 16
	PlatformWiiU             Platform = 17
	PlatformVulkan           Platform = 18
	PlatformSwitch           Platform = 19
	PlatformXboxOneD3D12     Platform = 20
	PlatformGameCoreXboxOne  Platform = 21
	PlatformGameCoreScarlett Platform = 22
	PlatformPS5              Platform = 23
	PlatformPS5NGGC          Platform = 24
)

var platformNames = map[Platform]string{
	PlatformNone:             "none",
	PlatformGL:               "gl",
	PlatformD3D9:             "d3d9",
	PlatformXbox360:          "xbox360",
	PlatformPS3:              "ps3",
	PlatformD3D11:            "d3d11",
	PlatformGLES20:           "gles20",
	PlatformNaCl:             "nacl",
	PlatformFlash:            "flash",
	PlatformD3D11_9x:         "d3d11_9x",
	PlatformGLES3Plus:        "gles3plus",
	PlatformPSP2:             "psp2",
	PlatformPS4:              "ps4",
	PlatformXboxOne:          "xboxone",
	PlatformPSM:              "psm",
	PlatformMetal:            "metal",
	PlatformOpenGLCore:       "glcore",
	PlatformN3DS:             "n3ds",
	PlatformWiiU:             "wiiu",
	PlatformVulkan:           "vulkan",
	PlatformSwitch:           "switch",
	PlatformXboxOneD3D12:     "xboxone_d3d12",
	PlatformGameCoreXboxOne:  "gamecore_xboxone",
	PlatformGameCoreScarlett: "gamecore_scarlett",
	PlatformPS5:              "ps5",
	PlatformPS5NGGC:          "ps5_nggc",
}

func (p Platform) String() string {
	if s, ok := platformNames[p]; ok {
		return s
	}
	return fmt.Sprintf("platform(%d)", int32(p))
}

func (p Platform) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// ParsePlatform accepts a platform name ("d3d11", "switch") or its numeric id.
func ParsePlatform(s string) (Platform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return Platform(n), nil
	}
	for p, name := range platformNames {
		if name == s {
			return p, nil
		}
	}
	return PlatformNone, errors.Wrapf(ErrUnknownPlatform, "%q", s)
}

// platformPrograms lists the vertex and fragment program types each platform
// compiles to. Platforms missing here carry no decompilable programs.
var platformPrograms = map[Platform][2][]ProgramType{
	PlatformD3D11: {
		{ProgramDX11VertexSM40, ProgramDX11VertexSM50},
		{ProgramDX11PixelSM40, ProgramDX11PixelSM50},
	},
	PlatformSwitch: {
		{ProgramConsoleVS},
		{ProgramConsoleFS},
	},
}

// VertexTypes returns the vertex program types emitted for p.
func (p Platform) VertexTypes() []ProgramType { return platformPrograms[p][0] }

// FragmentTypes returns the fragment program types emitted for p.
func (p Platform) FragmentTypes() []ProgramType { return platformPrograms[p][1] }

// Supported reports whether programs of p can be reconstructed.
func (p Platform) Supported() bool {
	_, ok := platformPrograms[p]
	return ok
}
