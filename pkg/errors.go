package hashmyfiles

import "errors"

// Error kinds surfaced by a run. InvalidPath and store errors abort the run;
// unreadable files are reported per-file and the scan continues.
var (
	// ErrInvalidPath indicates the root path does not exist or is not a directory
	ErrInvalidPath = errors.New("path does not exist or is not a directory")

	// ErrUnsupportedAlgorithm indicates an unknown hash algorithm name
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
)
