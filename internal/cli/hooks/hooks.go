// Package hooks bridges the chunker core's progress events to the CLI's
// surfaces: the structured logger and, on a TTY, a progress bar.
package hooks

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/urumarrazzaq/chunky/pkg/chunker"
)

// ProgressBar is the subset of the progress bar API the hooks need,
// decoupled so tests can substitute a recorder. *progressbar.ProgressBar
// satisfies it directly.
type ProgressBar interface {
	Add(num int) error
	Describe(description string)
	Close() error
}

// NoOpProgressBar is used when progress display is disabled.
type NoOpProgressBar struct{}

// Add implements ProgressBar.
func (NoOpProgressBar) Add(num int) error { return nil }

// Describe implements ProgressBar.
func (NoOpProgressBar) Describe(description string) {}

// Close implements ProgressBar.
func (NoOpProgressBar) Close() error { return nil }

// NewProgressBar creates a bar sized to the input file count, writing to w
// (normally stderr, keeping stdout clean for the report).
func NewProgressBar(total int, w io.Writer) ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("packing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// CLIHooks implements chunker.Hooks.
type CLIHooks struct {
	logger *slog.Logger
	bar    ProgressBar
	mu     sync.Mutex
}

// NewCLIHooks creates hooks that log per-file outcomes and advance the given
// progress bar. Pass nil for bar to disable progress display.
func NewCLIHooks(logger *slog.Logger, bar ProgressBar) *CLIHooks {
	if bar == nil {
		bar = NoOpProgressBar{}
	}
	return &CLIHooks{
		logger: logger.With(slog.String("component", "hooks")),
		bar:    bar,
	}
}

// OnFileProcessed implements chunker.Hooks.
func (h *CLIHooks) OnFileProcessed(path string, size uint64, disposition chunker.Disposition) {
	h.mu.Lock()
	h.bar.Describe(path)
	_ = h.bar.Add(1)
	h.mu.Unlock()

	switch disposition {
	case chunker.DispositionOversized:
		h.logger.Info("Skipping large file",
			slog.String("path", path),
			slog.String("size", fmt.Sprintf("%.2fMB", float64(size)/(1024*1024))))
	case chunker.DispositionUnmeasurable:
		h.logger.Debug("Size check failed", slog.String("path", path))
	case chunker.DispositionDirectory:
		h.logger.Debug("Skipping directory entry", slog.String("path", path))
	default:
		h.logger.Debug("File packed", slog.String("path", path), slog.Uint64("size", size))
	}
}

// OnRunComplete implements chunker.Hooks.
func (h *CLIHooks) OnRunComplete(chunks []chunker.Chunk, stats chunker.Stats) {
	h.mu.Lock()
	_ = h.bar.Close()
	h.mu.Unlock()

	h.logger.Info("Packing complete",
		slog.Int("chunks", stats.TotalChunks),
		slog.Int("successful", stats.SuccessfulFiles),
		slog.Int("failed", stats.FailedFiles),
		slog.Int("large", stats.LargeFiles))
}
