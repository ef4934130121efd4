package shaderfmt

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrStreamEOF     = errors.New("stream: unexpected end of data")
	ErrStreamOverrun = errors.New("stream: length exceeds remaining data")
)

// Stream reads the engine's little-endian serialization: fixed-width
// scalars plus length-prefixed strings and arrays padded to 4 bytes.
type Stream struct {
	data []byte
	pos  int
	end  int
}

// NewStream creates a stream over the given data.
func NewStream(data []byte) *Stream {
	return &Stream{data: data, pos: 0, end: len(data)}
}

// NewStreamAt creates a stream starting at offset within data.
func NewStreamAt(data []byte, offset int) *Stream {
	if offset > len(data) {
		offset = len(data)
	}
	return &Stream{data: data, pos: offset, end: len(data)}
}

// Position returns the current read position.
func (s *Stream) Position() int { return s.pos }

// SetPosition sets the read position.
func (s *Stream) SetPosition(pos int) {
	if pos > s.end {
		pos = s.end
	}
	s.pos = pos
}

// Remaining returns bytes left to read.
func (s *Stream) Remaining() int { return s.end - s.pos }

// ReadByte reads a single byte.
func (s *Stream) ReadByte() (byte, error) {
	if s.pos >= s.end {
		return 0, ErrStreamEOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

// ReadBytes reads n bytes into a new slice.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if n < 0 || s.pos+n > s.end {
		return nil, ErrStreamEOF
	}
	out := make([]byte, n)
	copy(out, s.data[s.pos:s.pos+n])
	s.pos += n
	return out, nil
}

// ReadBool reads one byte as a boolean.
func (s *Stream) ReadBool() (bool, error) {
	b, err := s.ReadByte()
	return b != 0, err
}

// ReadUint16 reads a little-endian uint16.
func (s *Stream) ReadUint16() (uint16, error) {
	if s.pos+2 > s.end {
		return 0, ErrStreamEOF
	}
	v := binary.LittleEndian.Uint16(s.data[s.pos:])
	s.pos += 2
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (s *Stream) ReadUint32() (uint32, error) {
	if s.pos+4 > s.end {
		return 0, ErrStreamEOF
	}
	v := binary.LittleEndian.Uint32(s.data[s.pos:])
	s.pos += 4
	return v, nil
}

// ReadInt32 reads a little-endian int32.
func (s *Stream) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads a little-endian IEEE-754 float.
func (s *Stream) ReadFloat32() (float32, error) {
	v, err := s.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadCount reads an int32 element count and checks it against the bytes
// left, given the minimum encoded size of one element.
func (s *Stream) ReadCount(minElem int) (int, error) {
	n, err := s.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrStreamOverrun
	}
	if minElem > 0 && int(n) > s.Remaining()/minElem {
		return 0, ErrStreamOverrun
	}
	return int(n), nil
}

// ReadAlignedString reads an int32 length, that many bytes, then pads to 4.
func (s *Stream) ReadAlignedString() (string, error) {
	b, err := s.ReadByteArray()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadByteArray reads an int32 length, that many bytes, then pads to 4.
func (s *Stream) ReadByteArray() ([]byte, error) {
	n, err := s.ReadCount(1)
	if err != nil {
		return nil, err
	}
	b, err := s.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	s.Align(4)
	return b, nil
}

// ReadStringArray reads an int32 count followed by that many aligned strings.
func (s *Stream) ReadStringArray() ([]string, error) {
	n, err := s.ReadCount(4)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		str, err := s.ReadAlignedString()
		if err != nil {
			return nil, err
		}
		out = append(out, str)
	}
	return out, nil
}

// Align advances position to the next alignment boundary.
func (s *Stream) Align(alignment int) {
	if alignment <= 0 {
		return
	}
	rem := s.pos % alignment
	if rem != 0 {
		s.pos += alignment - rem
	}
	if s.pos > s.end {
		s.pos = s.end
	}
}

// Skip advances the position by n bytes.
func (s *Stream) Skip(n int) error {
	if n < 0 || s.pos+n > s.end {
		return ErrStreamEOF
	}
	s.pos += n
	return nil
}
