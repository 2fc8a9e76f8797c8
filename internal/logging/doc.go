// Package logging builds the slog loggers used across marquee.
//
// Two output formats are supported: "console" for human-readable single-line
// output with terminal color when attached to a TTY, and "json" for machine
// consumption. Component loggers carry a standardized "component" attribute so
// log lines can be traced back to the emitting subsystem.
package logging
