package chunker

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects the rendering of the end-of-run summary.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Summary is the machine-readable form of a run's outcome, emitted when the
// caller asks for JSON or YAML output.
type Summary struct {
	SchemaVersion string         `json:"schemaVersion" yaml:"schemaVersion"`
	Repository    string         `json:"repository" yaml:"repository"`
	GeneratedAt   time.Time      `json:"generatedAt" yaml:"generatedAt"`
	MaxChunkSize  uint64         `json:"maxChunkSizeBytes" yaml:"maxChunkSizeBytes"`
	Stats         Stats          `json:"stats" yaml:"stats"`
	Chunks        []ChunkSummary `json:"chunks" yaml:"chunks"`
}

// ChunkSummary describes a single chunk within a Summary.
type ChunkSummary struct {
	Index     int         `json:"index" yaml:"index"`
	FileCount int         `json:"fileCount" yaml:"fileCount"`
	SizeBytes uint64      `json:"sizeBytes" yaml:"sizeBytes"`
	Files     []FileEntry `json:"files" yaml:"files"`
}

// ReportBuilder renders the outcome of a pack run. It is a pure function of
// its inputs: all sizes come from the FileEntry values recorded during
// packing, so building a report performs no filesystem access and two builds
// over the same inputs produce identical text.
type ReportBuilder struct {
	// MaxChunkSize is the ceiling the report describes, in bytes.
	// Zero means DefaultMaxChunkSize.
	MaxChunkSize uint64
	// Now supplies the generation timestamp. Nil means time.Now.
	Now func() time.Time
}

// NewReportBuilder returns a builder for the given ceiling.
func NewReportBuilder(maxChunkSize uint64) *ReportBuilder {
	return &ReportBuilder{MaxChunkSize: maxChunkSize}
}

func (b *ReportBuilder) ceiling() uint64 {
	if b.MaxChunkSize == 0 {
		return DefaultMaxChunkSize
	}
	return b.MaxChunkSize
}

func (b *ReportBuilder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Build renders the human-readable report: header, summary counters, the
// per-chunk listing, and, only when measurement failures occurred, the list
// of unprocessable paths.
func (b *ReportBuilder) Build(chunks []Chunk, stats Stats, rootDir string) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80)
	sep := strings.Repeat("-", 80)

	fmt.Fprintln(&sb, rule)
	fmt.Fprintln(&sb, "Git Repository Chunking Report")
	fmt.Fprintf(&sb, "Repository: %s\n", rootDir)
	fmt.Fprintf(&sb, "Generated: %s\n", b.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&sb, sep)
	fmt.Fprintln(&sb, "Summary Statistics:")
	fmt.Fprintf(&sb, "  Total files processed: %d\n", stats.TotalFiles)
	fmt.Fprintf(&sb, "  Successfully processed files: %d\n", stats.SuccessfulFiles)
	fmt.Fprintf(&sb, "  Files that couldn't be measured: %d\n", stats.FailedFiles)
	fmt.Fprintf(&sb, "  Files too large (>%dMB): %d\n", b.ceiling()/bytesPerMiB, stats.LargeFiles)
	fmt.Fprintf(&sb, "  Total size of processable files: %s\n", formatMB(stats.TotalSize))
	fmt.Fprintf(&sb, "  Total chunks created: %d\n", stats.TotalChunks)
	fmt.Fprintln(&sb, sep)

	fmt.Fprintln(&sb, "\nChunk Details:")
	for _, chunk := range chunks {
		fmt.Fprintf(&sb, "\nChunk #%d (%d files, %s):\n", chunk.Index, len(chunk.Files), formatMB(chunk.Size()))
		for _, f := range chunk.Files {
			fmt.Fprintf(&sb, "  - %s (%s)\n", f.Path, formatMB(f.Size))
		}
	}

	if stats.FailedFiles > 0 {
		fmt.Fprintln(&sb, sep)
		fmt.Fprintln(&sb, "\nFiles that couldn't be processed:")
		for _, path := range stats.FailedPaths {
			fmt.Fprintf(&sb, "  - %s\n", path)
		}
	}

	fmt.Fprintln(&sb, rule)
	return sb.String()
}

// Summary assembles the machine-readable form of the run.
func (b *ReportBuilder) Summary(chunks []Chunk, stats Stats, rootDir string) Summary {
	chunkSummaries := make([]ChunkSummary, 0, len(chunks))
	for _, chunk := range chunks {
		chunkSummaries = append(chunkSummaries, ChunkSummary{
			Index:     chunk.Index,
			FileCount: len(chunk.Files),
			SizeBytes: chunk.Size(),
			Files:     chunk.Files,
		})
	}
	return Summary{
		SchemaVersion: SummarySchemaVersion,
		Repository:    rootDir,
		GeneratedAt:   b.now().UTC(),
		MaxChunkSize:  b.ceiling(),
		Stats:         stats,
		Chunks:        chunkSummaries,
	}
}

// Render produces the report in the requested format. Text output is the
// Build layout; JSON and YAML marshal the Summary.
func (b *ReportBuilder) Render(chunks []Chunk, stats Stats, rootDir string, format OutputFormat) (string, error) {
	switch format {
	case OutputFormatText, "":
		return b.Build(chunks, stats, rootDir), nil
	case OutputFormatJSON:
		data, err := json.MarshalIndent(b.Summary(chunks, stats, rootDir), "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal summary to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case OutputFormatYAML:
		data, err := yaml.Marshal(b.Summary(chunks, stats, rootDir))
		if err != nil {
			return "", fmt.Errorf("marshal summary to YAML: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// formatMB renders a byte count in binary megabytes to two decimal places,
// matching the layout of the report's size fields.
func formatMB(bytes uint64) string {
	return fmt.Sprintf("%.2fMB", float64(bytes)/float64(bytesPerMiB))
}
