package chunker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urumarrazzaq/chunky/pkg/chunker"
)

// fakeProbe resolves sizes by base name so tests need no real files.
type fakeProbe struct {
	sizes map[string]uint64
	fail  map[string]bool
}

func (f *fakeProbe) Measure(absPath string) (uint64, bool) {
	name := filepath.Base(absPath)
	if f.fail[name] {
		return 0, false
	}
	size, ok := f.sizes[name]
	return size, ok
}

// recordingHooks captures per-file dispositions for assertions.
type recordingHooks struct {
	dispositions map[string]chunker.Disposition
	completed    bool
}

func (h *recordingHooks) OnFileProcessed(path string, size uint64, d chunker.Disposition) {
	if h.dispositions == nil {
		h.dispositions = make(map[string]chunker.Disposition)
	}
	h.dispositions[path] = d
}

func (h *recordingHooks) OnRunComplete(chunks []chunker.Chunk, stats chunker.Stats) {
	h.completed = true
}

func newPacker(ceiling uint64, probe chunker.SizeProber) *chunker.Packer {
	return chunker.NewPacker(chunker.Options{MaxChunkSize: ceiling, Probe: probe})
}

func chunkPaths(chunks []chunker.Chunk) [][]string {
	out := make([][]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Paths()
	}
	return out
}

func TestPackEmptyInput(t *testing.T) {
	p := newPacker(10, &fakeProbe{})

	chunks, stats := p.Pack(nil, "/repo")

	assert.Empty(t, chunks)
	assert.Equal(t, chunker.Stats{}, stats)
}

func TestPackBasicGreedyPacking(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"a": 4, "b": 4, "c": 4, "d": 11, "e": 2}}
	p := newPacker(10, probe)

	chunks, stats := p.Pack([]string{"a", "b", "c", "d", "e"}, "/repo")

	require.Len(t, chunks, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "e"}}, chunkPaths(chunks))
	assert.Equal(t, uint64(8), chunks[0].Size())
	assert.Equal(t, uint64(6), chunks[1].Size())
	assert.Equal(t, 2, stats.TotalChunks)
	assert.Equal(t, 5, stats.SuccessfulFiles, "oversized files are still measured successfully")
	assert.Equal(t, 1, stats.LargeFiles)
	assert.Equal(t, uint64(25), stats.TotalSize, "oversized files still count toward total size")
}

func TestPackExactFitStaysInChunk(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"a": 6, "b": 4, "c": 1}}
	p := newPacker(10, probe)

	chunks, _ := p.Pack([]string{"a", "b", "c"}, "/repo")

	require.Len(t, chunks, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunkPaths(chunks))
	assert.Equal(t, uint64(10), chunks[0].Size(), "a sum landing exactly on the ceiling stays together")
}

func TestPackExactCeilingFileFormsSingleton(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"a": 3, "b": 10, "c": 2}}
	p := newPacker(10, probe)

	chunks, stats := p.Pack([]string{"a", "b", "c"}, "/repo")

	require.Len(t, chunks, 3)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, chunkPaths(chunks))
	assert.Equal(t, uint64(10), chunks[1].Size(), "a file equal to the ceiling fills a chunk by itself")
	assert.Zero(t, stats.LargeFiles, "a file equal to the ceiling is not oversized")
}

func TestPackAllUnmeasurable(t *testing.T) {
	probe := &fakeProbe{fail: map[string]bool{"a": true, "b": true, "c": true}}
	p := newPacker(10, probe)

	chunks, stats := p.Pack([]string{"a", "b", "c"}, "/repo")

	assert.Empty(t, chunks)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 3, stats.FailedFiles)
	assert.Zero(t, stats.SuccessfulFiles)
	assert.Equal(t, []string{"a", "b", "c"}, stats.FailedPaths)
}

func TestPackSingleOversizedFileNeverPlaced(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"big": 11}}
	p := newPacker(10, probe)

	chunks, stats := p.Pack([]string{"big"}, "/repo")

	assert.Empty(t, chunks, "an oversized file is excluded even when it is the only input")
	assert.Equal(t, 1, stats.LargeFiles)
	assert.Equal(t, 1, stats.SuccessfulFiles)
	assert.Zero(t, stats.TotalChunks)
}

func TestPackSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("hello"), 0o644))

	hooks := &recordingHooks{}
	p := chunker.NewPacker(chunker.Options{MaxChunkSize: 100, EventHooks: hooks})
	chunks, stats := p.Pack([]string{"nested", "file.txt"}, root)

	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"file.txt"}, chunks[0].Paths())
	assert.Equal(t, 2, stats.Processed, "directories are counted as processed")
	assert.Equal(t, 1, stats.SuccessfulFiles, "directories are not classified")
	assert.Equal(t, uint64(5), stats.TotalSize)
	assert.Equal(t, chunker.DispositionDirectory, hooks.dispositions["nested"])
	assert.Equal(t, chunker.DispositionPacked, hooks.dispositions["file.txt"])
	assert.True(t, hooks.completed)
}

func TestPackCoverageInvariant(t *testing.T) {
	probe := &fakeProbe{
		sizes: map[string]uint64{"a": 7, "b": 3, "c": 9, "d": 15, "e": 1, "f": 10, "g": 2},
		fail:  map[string]bool{"x": true},
	}
	p := newPacker(10, probe)
	input := []string{"a", "b", "x", "c", "d", "e", "f", "g"}

	chunks, stats := p.Pack(input, "/repo")

	placed := 0
	for _, c := range chunks {
		placed += len(c.Files)
	}
	assert.Equal(t, stats.SuccessfulFiles, stats.LargeFiles+placed,
		"every successfully measured file is either oversized or placed in exactly one chunk")
}

func TestPackCeilingInvariant(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"a": 9, "b": 9, "c": 9, "d": 1, "e": 1, "f": 1}}
	p := newPacker(10, probe)

	chunks, _ := p.Pack([]string{"a", "b", "c", "d", "e", "f"}, "/repo")

	for _, c := range chunks {
		assert.LessOrEqual(t, c.Size(), uint64(10))
	}
}

func TestPackOrderPreservation(t *testing.T) {
	probe := &fakeProbe{
		sizes: map[string]uint64{"a": 4, "b": 4, "c": 4, "d": 4, "e": 4},
		fail:  map[string]bool{"m": true},
	}
	p := newPacker(10, probe)
	input := []string{"a", "m", "b", "c", "d", "e"}

	chunks, _ := p.Pack(input, "/repo")

	var flat []string
	for _, c := range chunks {
		flat = append(flat, c.Paths()...)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, flat,
		"chunk concatenation preserves input order with excluded entries removed")
}

func TestPackDeterminism(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"a": 5, "b": 6, "c": 2, "d": 8}}
	input := []string{"a", "b", "c", "d"}

	first, firstStats := newPacker(10, probe).Pack(input, "/repo")
	second, secondStats := newPacker(10, probe).Pack(input, "/repo")

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
}

func TestPackChunkIndicesAreSequential(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"a": 9, "b": 9, "c": 9}}
	p := newPacker(10, probe)

	chunks, _ := p.Pack([]string{"a", "b", "c"}, "/repo")

	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i+1, c.Index)
	}
}

func TestPackDefaultCeiling(t *testing.T) {
	probe := &fakeProbe{sizes: map[string]uint64{"small": 1024, "huge": 26 * 1024 * 1024}}
	p := chunker.NewPacker(chunker.Options{Probe: probe})

	chunks, stats := p.Pack([]string{"small", "huge"}, "/repo")

	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"small"}, chunks[0].Paths())
	assert.Equal(t, 1, stats.LargeFiles, "26 MiB exceeds the default 25 MiB ceiling")
}
