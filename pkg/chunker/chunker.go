// Package chunker partitions a list of files (typically the untracked files
// of a version-controlled working tree) into a sequence of size-bounded
// batches, so each batch can be uploaded, archived, or committed without
// exceeding a transport or storage limit.
//
// The package is a pure library: it consumes an ordered list of root-relative
// paths plus an absolute root directory, and produces chunks, statistics, and
// a formatted report. It opens files only to measure their sizes, writes
// nothing, and logs nothing; progress is observable through the Hooks
// interface. Per-file failures (unmeasurable or oversized files) never abort
// a run; they are absorbed into Stats and surfaced in the report.
package chunker
