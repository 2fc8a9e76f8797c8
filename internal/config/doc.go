// Package config loads, defaults, and validates marquee's TOML configuration.
//
// Configuration resolves from, in order: an explicit --config path, then
// ~/.config/marquee/config.toml, then ./marquee.toml, then built-in defaults.
// All filesystem paths are expanded (including ~) and made absolute during
// load, so the rest of the codebase never deals with relative paths.
package config
