// Package main hosts the Marquee CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the schedule pipeline on the
// terminal: serving the HTTP API, fetching and printing the schedule,
// exporting iCalendar files, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
