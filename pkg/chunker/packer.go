package chunker

import (
	"os"
	"path/filepath"
)

// Packer partitions an ordered list of files into size-bounded chunks using
// greedy first-fit along the input order. It never reorders, never looks
// ahead, and never fails: degenerate outcomes (zero chunks) are readable from
// the returned Stats.
type Packer struct {
	opts Options
}

// NewPacker returns a Packer for the given options, filling in defaults for
// any zero-valued field.
func NewPacker(opts Options) *Packer {
	return &Packer{opts: opts.withDefaults()}
}

// Pack processes paths (relative to rootDir) strictly in order and returns
// the resulting chunks plus aggregate statistics.
//
// Directories are dropped before classification. Files whose size cannot be
// measured are recorded in Stats.FailedPaths and belong to no chunk. Files
// larger than the ceiling are counted in Stats.LargeFiles and are never
// placed, not even alone. A file that lands the running total exactly on the
// ceiling stays in the current chunk; only strictly exceeding it opens a new
// one.
func (p *Packer) Pack(paths []string, rootDir string) ([]Chunk, Stats) {
	var (
		chunks      []Chunk
		current     Chunk
		currentSize uint64
	)
	stats := Stats{TotalFiles: len(paths)}
	current.Index = 1

	for _, relPath := range paths {
		absPath := filepath.Join(rootDir, relPath)
		stats.Processed++

		if info, err := os.Stat(absPath); err == nil && info.IsDir() {
			p.opts.EventHooks.OnFileProcessed(relPath, 0, DispositionDirectory)
			continue
		}

		size, ok := p.opts.Probe.Measure(absPath)
		if !ok {
			stats.FailedFiles++
			stats.FailedPaths = append(stats.FailedPaths, relPath)
			p.opts.EventHooks.OnFileProcessed(relPath, 0, DispositionUnmeasurable)
			continue
		}

		stats.SuccessfulFiles++
		stats.TotalSize += size

		if size > p.opts.MaxChunkSize {
			stats.LargeFiles++
			p.opts.EventHooks.OnFileProcessed(relPath, size, DispositionOversized)
			continue
		}

		if currentSize+size > p.opts.MaxChunkSize {
			chunks = append(chunks, current)
			stats.TotalChunks++
			current = Chunk{Index: current.Index + 1}
			currentSize = 0
		}

		current.Files = append(current.Files, FileEntry{Path: relPath, Size: size, Measured: true})
		currentSize += size
		p.opts.EventHooks.OnFileProcessed(relPath, size, DispositionPacked)
	}

	if len(current.Files) > 0 {
		chunks = append(chunks, current)
		stats.TotalChunks++
	}

	p.opts.EventHooks.OnRunComplete(chunks, stats)
	return chunks, stats
}

// Pack is a convenience wrapper over NewPacker with default options.
func Pack(paths []string, rootDir string) ([]Chunk, Stats) {
	return NewPacker(Options{}).Pack(paths, rootDir)
}
