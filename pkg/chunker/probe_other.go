//go:build !windows

package chunker

import "errors"

// handleProbeAvailable reports whether the privileged handle query can run.
// The query is only meaningful on Windows filesystems; elsewhere the strategy
// is present in the chain but never attempted.
func handleProbeAvailable() bool { return false }

func handleProbeSize(absPath string) (uint64, error) {
	return 0, errors.New("handle probe unavailable on this platform")
}
