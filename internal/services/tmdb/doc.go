// Package tmdb is a minimal client for The Movie Database: title search for
// enrichment metadata and image downloads from the TMDB CDN.
package tmdb
