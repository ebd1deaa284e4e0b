package chunker

import (
	"io"
	"os"
)

// probeStrategy is one step of the size measurement fallback chain. A
// strategy that is not applicable on the current platform reports itself
// unavailable and is skipped without being attempted.
type probeStrategy struct {
	name      string
	available func() bool
	measure   func(absPath string) (uint64, error)
}

// SizeProbe measures file sizes through an ordered chain of strategies,
// attempting each only if the previous one failed. The first success wins.
// The probe performs no retries and no caching.
type SizeProbe struct {
	strategies []probeStrategy
}

// NewSizeProbe returns a probe with the standard fallback chain:
//
//  1. direct filesystem metadata query (os.Stat, does not open the file);
//  2. a privileged file-handle query, meaningful only on Windows where
//     permission quirks can mask metadata that a raw handle still exposes;
//  3. opening the file and counting the bytes actually read, the most
//     expensive but most robust option.
func NewSizeProbe() *SizeProbe {
	return &SizeProbe{
		strategies: []probeStrategy{
			{
				name:      "stat",
				available: func() bool { return true },
				measure:   statSize,
			},
			{
				name:      "handle",
				available: handleProbeAvailable,
				measure:   handleProbeSize,
			},
			{
				name:      "read",
				available: func() bool { return true },
				measure:   readSize,
			},
		},
	}
}

// Measure returns the byte size of the file at absPath. It never returns an
// error: if every strategy fails, the result is (0, false) and the caller
// records the file as unmeasurable.
func (p *SizeProbe) Measure(absPath string) (uint64, bool) {
	for _, s := range p.strategies {
		if !s.available() {
			continue
		}
		if size, err := s.measure(absPath); err == nil {
			return size, true
		}
	}
	return 0, false
}

func statSize(absPath string) (uint64, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

func readSize(absPath string) (uint64, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := io.Copy(io.Discard, f)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}
