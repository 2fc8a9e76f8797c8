// Package pipeline wires the venue client, parser, caches, and enricher into
// the schedule operations the CLI and HTTP server expose.
package pipeline

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"marquee/internal/calendar"
	"marquee/internal/config"
	"marquee/internal/enrich"
	"marquee/internal/imagecache"
	"marquee/internal/logging"
	"marquee/internal/notifications"
	"marquee/internal/schedule"
	"marquee/internal/services"
	"marquee/internal/services/tmdb"
	"marquee/internal/snapshot"
	"marquee/internal/venue"
)

// Pipeline owns every stage of the schedule flow: fetch, parse, enrich,
// snapshot, image serving, and calendar export.
type Pipeline struct {
	cfg      *config.Config
	venue    *venue.Client
	parser   *schedule.Parser
	store    *snapshot.Store
	images   *imagecache.Cache
	searcher tmdb.Searcher
	enricher *enrich.Enricher
	exporter *calendar.Exporter
	notifier notifications.Service
	logger   *slog.Logger
	slot     string
}

type options struct {
	now         func() time.Time
	httpClient  *http.Client
	searcher    tmdb.Searcher
	searcherSet bool
	notifier    notifications.Service
}

// Option customizes pipeline construction.
type Option func(*options)

// WithClock overrides the wall clock used by the parser, snapshot store, and
// exporter. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithHTTPClient overrides the HTTP client used for calendar fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithSearcher replaces the movie catalog client. Passing nil disables
// enrichment regardless of configuration.
func WithSearcher(searcher tmdb.Searcher) Option {
	return func(o *options) {
		o.searcher = searcher
		o.searcherSet = true
	}
}

// WithNotifier replaces the notification service.
func WithNotifier(notifier notifications.Service) Option {
	return func(o *options) {
		if notifier != nil {
			o.notifier = notifier
		}
	}
}

// New builds a Pipeline from configuration. The snapshot store is opened
// eagerly; callers must Close the pipeline when done with it.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "init", "create cache directories", err)
	}

	loc, err := time.LoadLocation(cfg.Venue.Timezone)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "init", "load venue timezone", err)
	}

	store, err := snapshot.Open(cfg.SnapshotDBPath(), cfg.ScheduleTTL(), logger, snapshot.WithClock(o.now))
	if err != nil {
		return nil, err
	}

	searcher := o.searcher
	if !o.searcherSet {
		if key := strings.TrimSpace(cfg.TMDB.APIKey); key != "" {
			client, err := tmdb.New(key, cfg.TMDB.BaseURL, cfg.TMDB.ImageBaseURL, cfg.TMDB.Language)
			if err != nil {
				store.Close()
				return nil, err
			}
			searcher = client
		} else {
			logger.Info("no TMDB API key configured; metadata enrichment disabled")
		}
	}

	notifier := o.notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	var venueOpts []venue.Option
	if o.httpClient != nil {
		venueOpts = append(venueOpts, venue.WithHTTPClient(o.httpClient))
	}

	images := imagecache.New(cfg.ImageCacheDir(), logger)
	return &Pipeline{
		cfg:      cfg,
		venue:    venue.NewClient(cfg.CalendarURL(), cfg.Venue.UserAgent, logger, venueOpts...),
		parser:   schedule.NewParser(cfg.Venue.BaseURL, loc, logger, schedule.WithClock(o.now)),
		store:    store,
		images:   images,
		searcher: searcher,
		enricher: enrich.New(searcher, images, logger),
		exporter: calendar.New(cfg.Venue.Name, cfg.VenueLocation(), logger, calendar.WithClock(o.now)),
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		slot:     snapshotSlot(cfg.Venue.Name),
	}, nil
}

// Close releases the snapshot store.
func (p *Pipeline) Close() error {
	return p.store.Close()
}

// Schedule returns the current movie schedule, served from the snapshot
// store when it is still fresh and refreshed from the venue otherwise.
func (p *Pipeline) Schedule(ctx context.Context) ([]schedule.Movie, error) {
	if p.store.Fresh(ctx, p.slot) {
		if movies, ok := p.store.Read(ctx, p.slot); ok {
			p.logger.Debug("serving schedule from snapshot", logging.Int("movies", len(movies)))
			return movies, nil
		}
	}
	return p.Refresh(ctx)
}

// Refresh fetches, parses, and enriches the schedule unconditionally, then
// replaces the snapshot. A snapshot write failure is logged and swallowed;
// the freshly built schedule is still returned.
func (p *Pipeline) Refresh(ctx context.Context) ([]schedule.Movie, error) {
	html, err := p.venue.FetchCalendar(ctx)
	if err != nil {
		p.notifyFailure(ctx, err)
		return nil, err
	}

	movies, err := p.parser.Parse(html)
	if err != nil {
		p.notifyFailure(ctx, err)
		return nil, err
	}
	if len(movies) == 0 {
		err := services.Wrap(services.ErrNoData, "pipeline", "refresh", "calendar page contained no movies", nil)
		p.notifyFailure(ctx, err)
		return nil, err
	}

	enriched := p.enricher.Enrich(ctx, movies)

	if err := p.store.Write(ctx, p.slot, enriched); err != nil {
		p.logger.Warn("snapshot write failed", logging.Error(err))
	}

	showtimes := countShowtimes(enriched)
	p.logger.Info("schedule refreshed",
		logging.Int("movies", len(enriched)),
		logging.Int("showtimes", showtimes))
	if err := p.notifier.NotifyScheduleRefreshed(ctx, len(enriched), showtimes); err != nil {
		p.logger.Warn("refresh notification failed", logging.Error(err))
	}
	return enriched, nil
}

// Image returns poster bytes for a catalog image path, serving from the
// content-addressed cache and lazily populating it on a miss.
func (p *Pipeline) Image(ctx context.Context, imagePath string) ([]byte, error) {
	imagePath = strings.TrimSpace(imagePath)
	if imagePath == "" {
		return nil, services.Wrap(services.ErrNoData, "pipeline", "image", "empty image path", nil)
	}
	if data, ok := p.images.Get(imagePath); ok {
		return data, nil
	}
	if p.searcher == nil {
		return nil, services.Wrap(services.ErrNoData, "pipeline", "image", "image not cached and catalog client disabled", nil)
	}
	data, err := p.searcher.FetchImage(ctx, imagePath)
	if err != nil {
		return nil, services.Wrap(services.ErrNoData, "pipeline", "image", "image not resolvable", err)
	}
	if err := p.images.Put(imagePath, data); err != nil {
		p.logger.Warn("image cache write failed", logging.String("path", imagePath), logging.Error(err))
	}
	return data, nil
}

// ExportMovies renders caller-supplied movie records as an iCalendar
// document. The records carry everything the export needs, so this path
// never touches the venue or the snapshot store. It returns the suggested
// download filename and the document body.
func (p *Pipeline) ExportMovies(ctx context.Context, movies []schedule.Movie) (string, string, error) {
	body, err := p.exporter.Export(movies)
	if err != nil {
		return "", "", err
	}
	if err := p.notifier.NotifyCalendarExported(ctx, len(movies), countShowtimes(movies)); err != nil {
		p.logger.Warn("export notification failed", logging.Error(err))
	}
	return p.exporter.Filename(), body, nil
}

// ExportCalendar resolves the selected IDs against the current schedule and
// renders their showtimes as an iCalendar document. Used where the caller
// holds titles rather than full records.
func (p *Pipeline) ExportCalendar(ctx context.Context, selected []string) (string, string, error) {
	movies, err := p.Schedule(ctx)
	if err != nil {
		return "", "", err
	}
	return p.ExportMovies(ctx, calendar.Filter(movies, selected))
}

// Status describes the pipeline's cache and enrichment state.
type Status struct {
	Venue             string `json:"venue"`
	CacheFresh        bool   `json:"cache_fresh"`
	CacheAgeSeconds   int64  `json:"cache_age_seconds"`
	CacheTTLSeconds   int64  `json:"cache_ttl_seconds"`
	EnrichmentEnabled bool   `json:"enrichment_enabled"`
}

// Status reports the snapshot freshness and whether enrichment is active.
func (p *Pipeline) Status(ctx context.Context) Status {
	status := Status{
		Venue:             p.cfg.Venue.Name,
		CacheFresh:        p.store.Fresh(ctx, p.slot),
		CacheAgeSeconds:   -1,
		CacheTTLSeconds:   int64(p.store.TTL() / time.Second),
		EnrichmentEnabled: p.searcher != nil,
	}
	if age, ok := p.store.Age(ctx, p.slot); ok {
		status.CacheAgeSeconds = int64(age / time.Second)
	}
	return status
}

func (p *Pipeline) notifyFailure(ctx context.Context, cause error) {
	if err := p.notifier.NotifyRefreshFailed(ctx, cause); err != nil {
		p.logger.Warn("failure notification failed", logging.Error(err))
	}
}

func countShowtimes(movies []schedule.Movie) int {
	total := 0
	for _, movie := range movies {
		total += len(movie.Showtimes)
	}
	return total
}

func snapshotSlot(venueName string) string {
	fields := strings.Fields(strings.ToLower(venueName))
	if len(fields) == 0 {
		return "schedule"
	}
	return fields[0]
}
