// Package config loads and validates CLI configuration from its layered
// sources: built-in defaults, an optional YAML config file, CHUNKY_*
// environment variables, and command-line flags, in ascending priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/urumarrazzaq/chunky/pkg/chunker"
)

const (
	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. CHUNKY_MAXCHUNKSIZEMIB=50.
	EnvPrefix = "CHUNKY"
	// DefaultConfigName is the base name of the config file searched in the
	// working directory and ~/.config/chunky.
	DefaultConfigName = "chunky"
	// DefaultLogFile receives a copy of all log output and the final report.
	DefaultLogFile = "chunky.log"
	// DefaultWatchDebounce coalesces bursts of filesystem events in watch mode.
	DefaultWatchDebounce = "300ms"
)

// Options is the fully resolved CLI configuration.
type Options struct {
	// RepoPath is the directory whose containing repository is chunked.
	RepoPath string `mapstructure:"repo"`
	// MaxChunkSizeMiB is the configured ceiling in binary megabytes.
	MaxChunkSizeMiB int64 `mapstructure:"maxChunkSizeMiB"`
	// MaxChunkSize is the derived ceiling in bytes.
	MaxChunkSize uint64 `mapstructure:"-"`
	// LogFile duplicates log output and the report; empty disables it.
	LogFile string `mapstructure:"logFile"`
	// OutputFormat selects the report rendering on stdout.
	OutputFormat chunker.OutputFormat `mapstructure:"outputFormat"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
	// Watch keeps the process alive, re-running on working-tree changes.
	Watch bool `mapstructure:"watch"`
	// WatchDebounceStr is the raw debounce duration from config.
	WatchDebounceStr string `mapstructure:"watchDebounce"`
	// WatchDebounce is the parsed debounce duration.
	WatchDebounce time.Duration `mapstructure:"-"`
	// NoProgress disables the progress bar even on a TTY.
	NoProgress bool `mapstructure:"noProgress"`

	// ConfigFilePath is the config file actually loaded, for reporting.
	ConfigFilePath string `mapstructure:"-"`
	// LogWriter is the opened log file, nil when LogFile is empty.
	LogWriter io.Writer `mapstructure:"-"`
}

// flagBindings maps viper keys to the flag names defined on the root command.
var flagBindings = map[string]string{
	"repo":            "repo",
	"maxChunkSizeMiB": "max-chunk-size",
	"logFile":         "log-file",
	"outputFormat":    "output-format",
	"verbose":         "verbose",
	"watch":           "watch",
	"watchDebounce":   "watch-debounce",
	"noProgress":      "no-progress",
}

// LoadAndValidate merges all configuration sources, validates the result,
// derives computed fields, and constructs the application logger.
func LoadAndValidate(cfgFile string, flags *pflag.FlagSet) (Options, *slog.Logger, error) {
	var opts Options
	v := viper.New()

	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			tempLogger.Debug("No configuration file found, using defaults/env/flags")
		} else {
			return opts, tempLogger, fmt.Errorf("%w: reading config file: %w", chunker.ErrInvalidOptions, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flagName := range flagBindings {
			if flag := flags.Lookup(flagName); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return opts, tempLogger, fmt.Errorf("%w: binding flag --%s: %w", chunker.ErrInvalidOptions, flagName, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return opts, tempLogger, fmt.Errorf("%w: unmarshalling configuration: %w", chunker.ErrInvalidOptions, err)
	}
	opts.ConfigFilePath = v.ConfigFileUsed()

	if err := validateAndDerive(&opts); err != nil {
		return opts, tempLogger, err
	}

	logger, err := buildLogger(&opts)
	if err != nil {
		return opts, tempLogger, err
	}
	return opts, logger, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("repo", ".")
	v.SetDefault("maxChunkSizeMiB", int64(chunker.DefaultMaxChunkSizeMiB))
	v.SetDefault("logFile", DefaultLogFile)
	v.SetDefault("outputFormat", string(chunker.OutputFormatText))
	v.SetDefault("verbose", false)
	v.SetDefault("watch", false)
	v.SetDefault("watchDebounce", DefaultWatchDebounce)
	v.SetDefault("noProgress", false)
}

func validateAndDerive(opts *Options) error {
	if opts.MaxChunkSizeMiB < 1 {
		return fmt.Errorf("%w: max chunk size must be at least 1 MiB, got %d", chunker.ErrInvalidOptions, opts.MaxChunkSizeMiB)
	}
	opts.MaxChunkSize = uint64(opts.MaxChunkSizeMiB) * 1024 * 1024

	allowed := []chunker.OutputFormat{chunker.OutputFormatText, chunker.OutputFormatJSON, chunker.OutputFormatYAML}
	if !slices.Contains(allowed, opts.OutputFormat) {
		return fmt.Errorf("%w: output format must be one of text, json, yaml; got %q", chunker.ErrInvalidOptions, opts.OutputFormat)
	}

	absRepo, err := filepath.Abs(opts.RepoPath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve repository path %q: %w", chunker.ErrInvalidOptions, opts.RepoPath, err)
	}
	opts.RepoPath = absRepo
	info, err := os.Stat(opts.RepoPath)
	if err != nil {
		return fmt.Errorf("%w: repository path %q: %w", chunker.ErrInvalidOptions, opts.RepoPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: repository path %q is not a directory", chunker.ErrInvalidOptions, opts.RepoPath)
	}

	debounce, err := time.ParseDuration(opts.WatchDebounceStr)
	if err != nil || debounce <= 0 {
		return fmt.Errorf("%w: invalid watch debounce %q", chunker.ErrInvalidOptions, opts.WatchDebounceStr)
	}
	opts.WatchDebounce = debounce
	return nil
}

// buildLogger sets up a text slog handler on stderr, duplicated into the log
// file when one is configured. The log file is truncated so each run leaves
// a fresh record, the same behavior as the original tool's log setup.
func buildLogger(opts *Options) (*slog.Logger, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if opts.LogFile != "" {
		f, err := os.Create(opts.LogFile)
		if err != nil {
			return nil, fmt.Errorf("%w: opening log file %q: %w", chunker.ErrInvalidOptions, opts.LogFile, err)
		}
		opts.LogWriter = f
		w = io.MultiWriter(os.Stderr, f)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
