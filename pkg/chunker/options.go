package chunker

// SizeProber measures the byte size of a single file, reporting failure via
// the ok flag rather than an error. Implementations must never panic or abort
// a run; an unmeasurable file is an expected, recorded outcome.
type SizeProber interface {
	Measure(absPath string) (size uint64, ok bool)
}

// Hooks defines callbacks emitted while packing. The core performs no logging
// of its own; callers that want per-file progress (a progress bar, debug log
// lines) implement this interface. Hook errors are ignored by the packer.
type Hooks interface {
	// OnFileProcessed fires once per input path with its classification.
	// Size is zero for directories and unmeasurable files.
	OnFileProcessed(path string, size uint64, disposition Disposition)
	// OnRunComplete fires once after the final chunk is closed.
	OnRunComplete(chunks []Chunk, stats Stats)
}

// NoOpHooks is the default, do-nothing implementation of Hooks.
type NoOpHooks struct{}

// OnFileProcessed implements Hooks. It performs no action.
func (NoOpHooks) OnFileProcessed(path string, size uint64, disposition Disposition) {}

// OnRunComplete implements Hooks. It performs no action.
func (NoOpHooks) OnRunComplete(chunks []Chunk, stats Stats) {}

// Options configures a Packer. The zero value is usable: every field has a
// working default.
type Options struct {
	// MaxChunkSize is the per-chunk size ceiling in bytes.
	// Zero means DefaultMaxChunkSize (25 MiB).
	MaxChunkSize uint64

	// Probe measures file sizes. Nil means the standard fallback chain
	// (metadata query, privileged handle query, full read).
	Probe SizeProber

	// EventHooks receives per-file and end-of-run callbacks. Nil means NoOpHooks.
	EventHooks Hooks
}

func (o Options) withDefaults() Options {
	if o.MaxChunkSize == 0 {
		o.MaxChunkSize = DefaultMaxChunkSize
	}
	if o.Probe == nil {
		o.Probe = NewSizeProbe()
	}
	if o.EventHooks == nil {
		o.EventHooks = NoOpHooks{}
	}
	return o
}
