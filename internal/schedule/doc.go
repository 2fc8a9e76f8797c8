// Package schedule parses the venue's calendar HTML into a deduplicated,
// ordered movie schedule.
//
// Parsing runs in two passes: a discovery pass allocates one Movie per unique
// title in first-appearance order, and an attachment pass combines each day
// group's date label with item time labels into absolute showtimes. Identity
// is the exact title string, so the same title on different days merges into
// one record. Malformed fragments are logged and skipped; a single bad entry
// never fails the batch.
package schedule
