// Package calendar renders selected showtimes as an iCalendar document.
package calendar

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"marquee/internal/logging"
	"marquee/internal/schedule"
	"marquee/internal/services"
	"marquee/internal/textutil"
)

// eventDuration is the fixed length of every exported event; showtime
// listings carry no end times.
const eventDuration = 2 * time.Hour

// Exporter builds .ics documents from schedule movies. One VEVENT is emitted
// per showtime of every selected movie.
type Exporter struct {
	venueName string
	location  string
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithClock overrides the wall clock used for export timestamps and
// download filenames. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Exporter. The venue name seeds download filenames and the
// location string is attached to every event.
func New(venueName, location string, logger *slog.Logger, opts ...Option) *Exporter {
	exporter := &Exporter{
		venueName: venueName,
		location:  location,
		logger:    logging.NewComponentLogger(logger, "calendar"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(exporter)
	}
	return exporter
}

// Export serializes every showtime of the provided movies into an iCalendar
// document. It fails with services.ErrEmptySelection when the selection
// contains no movies or no showtimes at all.
func (e *Exporter) Export(movies []schedule.Movie) (string, error) {
	if len(movies) == 0 {
		return "", services.Wrap(services.ErrEmptySelection, "calendar", "export", "no movies selected", nil)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//marquee//showtime export//EN")

	events := 0
	for _, movie := range movies {
		for _, showtime := range movie.Showtimes {
			event := cal.AddEvent(uuid.NewString())
			event.SetCreatedTime(e.now())
			event.SetDtStampTime(e.now())
			event.SetSummary(movie.Title)
			event.SetStartAt(showtime.Start)
			event.SetEndAt(showtime.Start.Add(eventDuration))
			if e.location != "" {
				event.SetLocation(e.location)
			}
			if showtime.URL != "" {
				event.SetURL(showtime.URL)
			}
			if movie.Overview != "" {
				event.SetDescription(movie.Overview)
			}
			events++
		}
	}
	if events == 0 {
		return "", services.Wrap(services.ErrEmptySelection, "calendar", "export", "selected movies have no showtimes", nil)
	}

	e.logger.Debug("calendar exported", logging.Int("movies", len(movies)), logging.Int("events", events))
	return cal.Serialize(), nil
}

// Filename returns the suggested download filename for an export, derived
// from the venue name and the current time.
func (e *Exporter) Filename() string {
	prefix := "events"
	if fields := strings.Fields(e.venueName); len(fields) > 0 {
		prefix = strings.ToLower(fields[0]) + "_events"
	}
	name := fmt.Sprintf("%s_%s.ics", prefix, e.now().Format("20060102_150405"))
	return textutil.SanitizeFileName(name)
}

// Filter returns the movies whose IDs appear in the selection, preserving
// schedule order. IDs not present in the schedule are ignored.
func Filter(movies []schedule.Movie, selected []string) []schedule.Movie {
	if len(selected) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		wanted[id] = struct{}{}
	}
	var out []schedule.Movie
	for _, movie := range movies {
		if _, ok := wanted[movie.ID]; ok {
			out = append(out, movie)
		}
	}
	return out
}
