package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/urumarrazzaq/chunky/internal/cli"
	"github.com/urumarrazzaq/chunky/internal/cli/config"
	"github.com/urumarrazzaq/chunky/pkg/chunker"
)

var (
	// Set at build time using -ldflags.
	version = "dev"
	commit  = "none"
	date    = "unknown"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "chunky [flags]",
	Short: "Partitions a repository's untracked files into size-bounded chunks.",
	Long: `chunky scans a git working tree for untracked files and groups them
into ordered chunks whose total size stays under a configurable ceiling
(25 MiB by default), so each chunk can be uploaded, archived, or committed
without tripping a transport or storage limit.

Files larger than the ceiling and files whose size cannot be measured are
excluded and called out in the final report; they never abort a run.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		opts, logger, err := config.LoadAndValidate(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		return cli.NewApp(opts, logger).Run(ctx)
	},
}

// Execute runs the root command, printing the failure and exiting non-zero
// on error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default searches ., $HOME/.config/chunky/)")

	rootCmd.Flags().StringP("repo", "r", ".", "Path inside the git repository to chunk")
	rootCmd.Flags().Int64("max-chunk-size", chunker.DefaultMaxChunkSizeMiB, "Chunk size ceiling in MiB")
	rootCmd.Flags().String("log-file", config.DefaultLogFile, "File receiving log output and the report (empty to disable)")
	rootCmd.Flags().String("output-format", string(chunker.OutputFormatText), `Report format on stdout ("text", "json", "yaml")`)
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.Flags().Bool("watch", false, "Re-run automatically when the working tree changes")
	rootCmd.Flags().String("watch-debounce", config.DefaultWatchDebounce, "Delay before re-running after a change (e.g. '300ms', '2s')")
	rootCmd.Flags().Bool("no-progress", false, "Disable the progress bar even on a TTY")
}
