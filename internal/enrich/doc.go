// Package enrich decorates parsed schedule movies with catalog metadata.
//
// Each movie in a batch is looked up concurrently against the movie catalog
// using a cleaned title (trailing parentheticals stripped). Failures are
// per-movie: a lookup that errors or matches nothing leaves that movie's
// metadata absent and never disturbs the rest of the batch. Poster artwork
// for successful matches is pre-fetched into the image cache as a side
// effect so the HTTP image endpoint usually serves warm.
package enrich
