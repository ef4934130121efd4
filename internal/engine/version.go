// Package engine identifies the engine build and GPU targets a compiled shader was produced for.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadVersion is returned when a version tag cannot be parsed.
var ErrBadVersion = errors.New("engine: malformed version")

// ReleaseType is the letter between the build number and the type number
// of a version tag ("a", "b", "f", "p", "x").
type ReleaseType byte

const (
	ReleaseAlpha ReleaseType = 'a'
	ReleaseBeta  ReleaseType = 'b'
	ReleaseFinal ReleaseType = 'f'
	ReleasePatch ReleaseType = 'p'
	ReleaseExp   ReleaseType = 'x'
)

// rank orders release types within one build: alpha < beta < final < patch.
func (t ReleaseType) rank() int {
	switch t {
	case ReleaseExp:
		return 0
	case ReleaseAlpha:
		return 1
	case ReleaseBeta:
		return 2
	case ReleaseFinal:
		return 3
	case ReleasePatch:
		return 4
	default:
		return 3
	}
}

// Version is an engine version tag such as 2021.3.5f1.
type Version struct {
	Major      int
	Minor      int
	Build      int
	Type       ReleaseType
	TypeNumber int
}

// V returns the earliest tag of a build, ordered below its experimental,
// alpha and beta releases. Format thresholds are built with it.
func V(major, minor, build int) Version {
	return Version{Major: major, Minor: minor, Build: build, Type: ReleaseExp}
}

// ParseVersion parses "2021.3.5f1", "2019.4.0" or "5.6.7p2".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Version{}, errors.Wrapf(ErrBadVersion, "%q", s)
	}
	var v Version
	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return Version{}, errors.Wrapf(ErrBadVersion, "%q: major", s)
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return Version{}, errors.Wrapf(ErrBadVersion, "%q: minor", s)
	}
	v.Type = ReleaseFinal
	if len(parts) == 2 {
		return v, nil
	}

	rest := parts[2]
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return Version{}, errors.Wrapf(ErrBadVersion, "%q: build", s)
	}
	if v.Build, err = strconv.Atoi(rest[:i]); err != nil {
		return Version{}, errors.Wrapf(ErrBadVersion, "%q: build", s)
	}
	if i == len(rest) {
		return v, nil
	}
	v.Type = ReleaseType(rest[i])
	switch v.Type {
	case ReleaseAlpha, ReleaseBeta, ReleaseFinal, ReleasePatch, ReleaseExp:
	default:
		return Version{}, errors.Wrapf(ErrBadVersion, "%q: release type %q", s, rest[i])
	}
	if num := rest[i+1:]; num != "" {
		// Trailing suffixes such as "f1c1" keep only the leading number.
		j := 0
		for j < len(num) && num[j] >= '0' && num[j] <= '9' {
			j++
		}
		if j > 0 {
			if v.TypeNumber, err = strconv.Atoi(num[:j]); err != nil {
				return Version{}, errors.Wrapf(ErrBadVersion, "%q: release number", s)
			}
		}
	}
	return v, nil
}

// MustParseVersion is ParseVersion for literals known to be valid.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or +1.
func (v Version) Compare(o Version) int {
	pairs := [...][2]int{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Build, o.Build},
		{v.Type.rank(), o.Type.rank()},
		{v.TypeNumber, o.TypeNumber},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v >= o.
func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

// Less reports whether v < o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// IsZero reports whether the version was never set.
func (v Version) IsZero() bool { return v == Version{} }

func (v Version) String() string {
	t := v.Type
	if t == 0 {
		t = ReleaseFinal
	}
	return fmt.Sprintf("%d.%d.%d%c%d", v.Major, v.Minor, v.Build, t, v.TypeNumber)
}
