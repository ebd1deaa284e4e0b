// Package cli orchestrates a chunky run: enumerate untracked files, pack
// them into size-bounded chunks, and deliver the report.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/urumarrazzaq/chunky/internal/cli/config"
	"github.com/urumarrazzaq/chunky/internal/cli/git"
	"github.com/urumarrazzaq/chunky/internal/cli/hooks"
	"github.com/urumarrazzaq/chunky/pkg/chunker"
)

// App wires the collaborators around the chunker core.
type App struct {
	Opts   config.Options
	Logger *slog.Logger
	Client git.Client
	Stdout io.Writer
}

// NewApp builds an App with the go-git client and stdout as the report sink.
func NewApp(opts config.Options, logger *slog.Logger) *App {
	return &App{
		Opts:   opts,
		Logger: logger,
		Client: git.NewClient(logger.Handler()),
		Stdout: os.Stdout,
	}
}

// Run executes one enumerate-pack-report cycle, or keeps re-running it on
// working-tree changes when watch mode is enabled.
func (a *App) Run(ctx context.Context) error {
	if a.Opts.Watch {
		return a.watchLoop(ctx)
	}
	return a.runOnce()
}

// runOnce is the single synchronous pipeline. Per-file failures never reach
// the error return; only structural problems (not a repository, unreadable
// worktree, undeliverable report) do. An empty untracked set is a clean
// nothing-to-do exit, not an error.
func (a *App) runOnce() error {
	a.Logger.Info("Processing repository", slog.String("path", a.Opts.RepoPath))

	paths, rootDir, err := a.Client.UntrackedFiles(a.Opts.RepoPath)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		a.Logger.Info("No untracked files found in the repository")
		return nil
	}
	a.Logger.Info("Found untracked items", slog.Int("count", len(paths)))

	var bar hooks.ProgressBar
	if !a.Opts.NoProgress && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = hooks.NewProgressBar(len(paths), os.Stderr)
	}

	packer := chunker.NewPacker(chunker.Options{
		MaxChunkSize: a.Opts.MaxChunkSize,
		EventHooks:   hooks.NewCLIHooks(a.Logger, bar),
	})
	chunks, stats := packer.Pack(paths, rootDir)

	if len(chunks) == 0 {
		a.Logger.Warn("No valid chunks could be created")
		if stats.LargeFiles > 0 {
			a.Logger.Warn("Files were too large for any chunk", slog.Int("count", stats.LargeFiles))
		}
		if stats.FailedFiles > 0 {
			a.Logger.Warn("File sizes could not be measured", slog.Int("count", stats.FailedFiles))
		}
	}

	builder := chunker.NewReportBuilder(a.Opts.MaxChunkSize)
	rendered, err := builder.Render(chunks, stats, rootDir, a.Opts.OutputFormat)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(a.Stdout, rendered); err != nil {
		return fmt.Errorf("%w: %w", chunker.ErrReportWrite, err)
	}

	// The log file always records the full text report, whatever format
	// stdout carries.
	if a.Opts.LogWriter != nil {
		if _, err := io.WriteString(a.Opts.LogWriter, builder.Build(chunks, stats, rootDir)); err != nil {
			return fmt.Errorf("%w: %w", chunker.ErrReportWrite, err)
		}
	}

	a.Logger.Info("Operation completed successfully")
	return nil
}
