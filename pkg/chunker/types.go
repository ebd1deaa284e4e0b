package chunker

// Disposition classifies the outcome of processing a single input path
// during packing. It is reported through the Hooks interface so callers
// can surface per-file progress without the core doing any logging itself.
type Disposition string

const (
	// DispositionPacked indicates the file was measured and placed in a chunk.
	DispositionPacked Disposition = "packed"
	// DispositionOversized indicates the measured size exceeded the ceiling;
	// the file is excluded from every chunk, including as a singleton.
	DispositionOversized Disposition = "oversized"
	// DispositionUnmeasurable indicates every size probe strategy failed.
	DispositionUnmeasurable Disposition = "unmeasurable"
	// DispositionDirectory indicates the path resolved to a directory and was
	// dropped before classification. Version-control tools list untracked
	// directories alongside files; these carry no byte size.
	DispositionDirectory Disposition = "directory"
)

// FileEntry is a single file placed in a chunk: its repository-root-relative
// path together with the size measured during packing. Sizes are carried
// forward so report generation never has to touch the filesystem again.
type FileEntry struct {
	Path     string `json:"path" yaml:"path"`
	Size     uint64 `json:"sizeBytes" yaml:"sizeBytes"`
	Measured bool   `json:"-" yaml:"-"`
}

// Chunk is an ordered group of files whose summed measured sizes do not
// exceed the configured ceiling. Chunks are immutable once returned by Pack;
// the relative order of files within a chunk matches the input order.
type Chunk struct {
	Index int         `json:"index" yaml:"index"`
	Files []FileEntry `json:"files" yaml:"files"`
}

// Size returns the summed measured size of all files in the chunk.
func (c Chunk) Size() uint64 {
	var total uint64
	for _, f := range c.Files {
		total += f.Size
	}
	return total
}

// Paths returns the relative paths of the chunk's files in order.
func (c Chunk) Paths() []string {
	paths := make([]string, len(c.Files))
	for i, f := range c.Files {
		paths[i] = f.Path
	}
	return paths
}

// Stats accumulates counters over a single Pack invocation. For every
// terminal state SuccessfulFiles equals LargeFiles plus the number of files
// placed in chunks; Processed counts every input entry, directories included.
type Stats struct {
	TotalFiles      int      `json:"totalFiles" yaml:"totalFiles"`
	Processed       int      `json:"processedFiles" yaml:"processedFiles"`
	SuccessfulFiles int      `json:"successfulFiles" yaml:"successfulFiles"`
	FailedFiles     int      `json:"failedFiles" yaml:"failedFiles"`
	LargeFiles      int      `json:"largeFiles" yaml:"largeFiles"`
	TotalChunks     int      `json:"totalChunks" yaml:"totalChunks"`
	TotalSize       uint64   `json:"totalSizeBytes" yaml:"totalSizeBytes"`
	FailedPaths     []string `json:"failedPaths,omitempty" yaml:"failedPaths,omitempty"`
}
