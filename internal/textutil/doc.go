// Package textutil provides text helpers for catalog lookups and rendering:
// parenthetical-suffix stripping for scraped titles, all-caps softening for
// display, and download filename sanitization.
package textutil
