// Package snapshot stores timestamped schedule snapshots with a fixed
// time-to-live, backed by a single SQLite file.
//
// The store is a performance optimization, never a correctness dependency:
// reads of a stale or missing slot report absent rather than erroring, and
// callers treat write failures as log-worthy but non-fatal.
package snapshot
