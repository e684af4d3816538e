// Package emitter writes the graph document consumed by the orchestrator.
//
// The document is a single JSON object keyed by project root, in discovery
// order, followed by the `_errors` list and the `_stats` summary. After a
// successful write a `SUCCESS: <path>` line is printed; consumers wait for
// it before reading the file.
package emitter
