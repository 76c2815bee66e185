// Package tasks implements long-running catalog operations that sit above
// the recommendation engine, currently per-genre batch exports.
//
// The core type is ExportEngine, which samples a recommendation batch for
// each requested genre and writes the batches to disk concurrently. Work is
// distributed through a worker pool: a producer goroutine samples genres in
// order and feeds a jobs channel, while a bounded set of workers write files
// and report per-genre results. Progress updates flow through an optional
// channel with non-blocking sends, so a slow consumer never stalls an export.
//
// Every run ends with an export_manifest.json in the output directory
// summarizing successes, failures, and the files written.
package tasks
