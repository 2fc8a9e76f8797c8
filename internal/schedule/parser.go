package schedule

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"marquee/internal/logging"
)

// Selectors matching the venue's calendar markup. One day group per calendar
// date, each holding item entries with a showtimes block.
const (
	dayGroupSelector      = "div.calendar-list-day"
	dateLabelSelector     = "div.date"
	itemSelector          = "div.item"
	showtimeBlockSelector = "span.calendar-list-showtimes"
	titleLinkSelector     = "a.title"
	soldOutClass          = "sold_out"
)

// Parser turns the venue's calendar HTML into a deduplicated movie list.
// Parsing is deterministic and tolerant: malformed day groups and items are
// logged and skipped, never surfaced as errors.
type Parser struct {
	origin string
	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock overrides the reference clock used to resolve date labels that
// carry no year.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser builds a Parser for the given venue origin (used to absolutize
// relative ticket links) and timezone.
func NewParser(origin string, loc *time.Location, logger *slog.Logger, opts ...Option) *Parser {
	if loc == nil {
		loc = time.Local
	}
	p := &Parser{
		origin: strings.TrimRight(origin, "/"),
		loc:    loc,
		logger: logging.NewComponentLogger(logger, "schedule"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts the deduplicated movie list from calendar HTML. Movie order
// is first-appearance order; showtime order is document order across all day
// groups. The only error condition is an unreadable document; an empty result
// is returned as an empty slice for the caller to classify.
func (p *Parser) Parse(html string) ([]Movie, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse calendar document: %w", err)
	}

	days := doc.Find(dayGroupSelector)
	p.logger.Debug("partitioned calendar", logging.Int("day_groups", days.Length()))

	// Pass 1: discover unique titles, preserving first-seen order.
	order := make([]string, 0, 16)
	index := make(map[string]*Movie, 16)
	days.Each(func(_ int, day *goquery.Selection) {
		day.Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
			block := item.Find(showtimeBlockSelector).First()
			if block.Length() == 0 {
				return
			}
			title := strings.TrimSpace(block.Find(titleLinkSelector).First().Text())
			if title == "" {
				return
			}
			if _, seen := index[title]; !seen {
				index[title] = &Movie{ID: title, Title: title}
				order = append(order, title)
			}
		})
	})

	// Pass 2: attach showtimes, combining each day group's date label with
	// the item's time label.
	days.Each(func(dayIdx int, day *goquery.Selection) {
		dateLabel := strings.TrimSpace(day.Find(dateLabelSelector).First().Text())
		if dateLabel == "" {
			p.logger.Debug("day group missing date label, skipping",
				logging.Int("day_group", dayIdx+1))
			return
		}
		day.Find(itemSelector).Each(func(itemIdx int, item *goquery.Selection) {
			p.attachShowtime(index, dateLabel, dayIdx, itemIdx, item)
		})
	})

	movies := make([]Movie, 0, len(order))
	for _, title := range order {
		movies = append(movies, *index[title])
	}
	p.logger.Debug("parse complete", logging.Int("movies", len(movies)))
	return movies, nil
}

func (p *Parser) attachShowtime(index map[string]*Movie, dateLabel string, dayIdx, itemIdx int, item *goquery.Selection) {
	block := item.Find(showtimeBlockSelector).First()
	if block.Length() == 0 {
		p.logger.Debug("item missing showtime block, skipping",
			logging.Int("day_group", dayIdx+1), logging.Int("item", itemIdx+1))
		return
	}

	title := strings.TrimSpace(block.Find(titleLinkSelector).First().Text())
	timeLink := block.Find("a").Last()
	if title == "" || timeLink.Length() == 0 {
		p.logger.Debug("item missing title or time link, skipping",
			logging.Int("day_group", dayIdx+1), logging.Int("item", itemIdx+1))
		return
	}

	timeLabel := strings.TrimSpace(timeLink.Text())
	start, err := p.resolveStart(dateLabel, timeLabel)
	if err != nil {
		// A malformed single entry never fails the batch.
		p.logger.Debug("unparseable showtime, dropping item",
			logging.String("title", title),
			logging.String("date_label", dateLabel),
			logging.String("time_label", timeLabel),
			logging.Error(err))
		return
	}

	movie := index[title]
	if movie == nil {
		return
	}
	url := p.absoluteURL(strings.TrimSpace(timeLink.AttrOr("href", "")))
	movie.Showtimes = append(movie.Showtimes, NewShowtime(start, timeLink.HasClass(soldOutClass), url))
}

// absoluteURL prefixes relative ticket links with the venue origin.
func (p *Parser) absoluteURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return p.origin + href
}
