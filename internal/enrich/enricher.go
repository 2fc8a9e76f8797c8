package enrich

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"marquee/internal/imagecache"
	"marquee/internal/logging"
	"marquee/internal/schedule"
	"marquee/internal/services/tmdb"
	"marquee/internal/textutil"
)

// Enricher attaches catalog metadata to parsed movies. Lookups are
// best-effort: a movie whose search fails keeps absent metadata and the rest
// of the batch is unaffected.
type Enricher struct {
	searcher tmdb.Searcher
	images   *imagecache.Cache
	logger   *slog.Logger
}

// New creates an Enricher. A nil searcher disables enrichment entirely, which
// is how an unconfigured TMDB key degrades. The image cache is optional; when
// present, successful lookups pre-fetch poster bytes into it.
func New(searcher tmdb.Searcher, images *imagecache.Cache, logger *slog.Logger) *Enricher {
	return &Enricher{
		searcher: searcher,
		images:   images,
		logger:   logging.NewComponentLogger(logger, "enrich"),
	}
}

// Enrich looks up every movie concurrently and attaches poster, backdrop,
// and overview where the lookup succeeds. The output preserves the exact
// order, length, and identity of the input; enrichment never reorders,
// merges, or removes records. All lookups complete before Enrich returns.
func (e *Enricher) Enrich(ctx context.Context, movies []schedule.Movie) []schedule.Movie {
	if e.searcher == nil || len(movies) == 0 {
		return movies
	}

	enriched := make([]schedule.Movie, len(movies))
	copy(enriched, movies)

	// One task per movie against the shared client, joined as a batch. The
	// listing is bounded by the venue's multi-week calendar, so the fan-out
	// runs unbounded.
	var group errgroup.Group
	for i := range enriched {
		group.Go(func() error {
			e.enrichOne(ctx, &enriched[i])
			return nil
		})
	}
	_ = group.Wait()

	return enriched
}

func (e *Enricher) enrichOne(ctx context.Context, movie *schedule.Movie) {
	lookup := textutil.CleanLookupTitle(movie.Title)
	resp, err := e.searcher.SearchMovie(ctx, lookup)
	if err != nil {
		e.logger.Debug("catalog lookup failed",
			logging.String("title", movie.Title),
			logging.String("lookup", lookup),
			logging.Error(err))
		return
	}
	if len(resp.Results) == 0 {
		e.logger.Debug("no catalog match",
			logging.String("title", movie.Title),
			logging.String("lookup", lookup))
		return
	}

	match := resp.Results[0]
	movie.PosterPath = match.PosterPath
	movie.BackdropPath = match.BackdropPath
	movie.Overview = match.Overview

	e.prefetchPoster(ctx, movie.Title, match.PosterPath)
}

// prefetchPoster warms the image cache as a side effect of a successful
// lookup. Failure here is independent of the attached metadata: the serving
// path fetches on demand, so a missed pre-fetch self-heals on first view.
func (e *Enricher) prefetchPoster(ctx context.Context, title, posterPath string) {
	if e.images == nil || posterPath == "" || e.images.Has(posterPath) {
		return
	}
	data, err := e.searcher.FetchImage(ctx, posterPath)
	if err != nil {
		e.logger.Debug("poster prefetch failed",
			logging.String("title", title),
			logging.String("poster", posterPath),
			logging.Error(err))
		return
	}
	if err := e.images.Put(posterPath, data); err != nil {
		e.logger.Warn("poster cache write failed",
			logging.String("poster", posterPath),
			logging.Error(err))
	}
}
