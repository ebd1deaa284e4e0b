package chunker

import "errors"

// Exported error variables for the fatal, pre-packing failure categories.
// Per-file problems (unmeasurable or oversized files) are never reported
// through the error channel; they are absorbed into Stats and surfaced in the
// report. Library users check these with errors.Is.
var (
	// ErrInvalidOptions indicates configuration failed validation before a
	// run could start (bad ceiling, unresolvable paths, unknown formats).
	ErrInvalidOptions = errors.New("invalid configuration options provided")

	// ErrNotARepository indicates the requested root directory is not inside
	// a version-controlled working tree.
	ErrNotARepository = errors.New("not a git repository")

	// ErrGitOperation indicates a failure while querying the repository for
	// its untracked files.
	ErrGitOperation = errors.New("git operation failed")

	// ErrReportWrite indicates the rendered report could not be delivered to
	// its destination (log file or stream).
	ErrReportWrite = errors.New("failed to write report")

	// ErrUnsupportedFormat indicates an unrecognized report output format.
	ErrUnsupportedFormat = errors.New("unsupported report format")
)
