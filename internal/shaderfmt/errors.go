package shaderfmt

import "github.com/pkg/errors"

// Error kinds shared by the extraction and emission pipeline. Callers
// classify failures with errors.Is.
var (
	// ErrPlatformNotFound: the requested platform has no slot in the
	// compiled object. Fatal for the whole object.
	ErrPlatformNotFound = errors.New("platform not found")

	// ErrCorruptData: a table or sub-format disagrees with its declared lengths.
	ErrCorruptData = errors.New("corrupt data")

	// ErrOutOfRange: a blob index outside the parsed entry table.
	ErrOutOfRange = errors.New("index out of range")

	// ErrDecompress: a segment failed to decompress. Fatal for extraction.
	ErrDecompress = errors.New("decompression failed")

	// ErrDecompile: the bytecode decompiler rejected a sub-program.
	// Recovered per variant.
	ErrDecompile = errors.New("decompile failed")
)
