package chunker

// Constants defining default values for packing options. These are also used
// when setting up Viper defaults during CLI configuration loading.
const (
	// DefaultMaxChunkSizeMiB is the default chunk size ceiling in binary
	// megabytes.
	DefaultMaxChunkSizeMiB = 25
	// DefaultMaxChunkSize is the default chunk size ceiling in bytes.
	DefaultMaxChunkSize uint64 = DefaultMaxChunkSizeMiB * bytesPerMiB

	bytesPerMiB = 1024 * 1024
)

// SummarySchemaVersion identifies the structure of the machine-readable
// Summary emitted in JSON or YAML form. Increment on incompatible changes.
const SummarySchemaVersion = "1.0"
