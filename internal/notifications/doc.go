// Package notifications delivers pipeline events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set.
// Refresh and error notifications can be toggled independently so a quiet
// topic only hears about failures.
//
// Extend this package if you need alternative transports; pipeline code
// depends only on the simple Service interface.
package notifications
