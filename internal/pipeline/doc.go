// Package pipeline extracts a schedule, an ordered list of text blocks,
// from a single image.
//
// A run is a single pass:
//
//	load -> detect -> extract -> filter/sort -> recognize each region -> assemble
//
// Loading failures (missing file, undecodable bytes, image below the minimum
// size) abort the run with an error result. A region that cannot be
// recognized is dropped on its own and never fails the run. A run that
// finishes with no text is a warning, not an error.
//
// Every run gets a uuid that tags its log lines and trace spans. Spans go to
// the global OpenTelemetry provider, which is a no-op unless the host
// installs one.
package pipeline
