package schedule

import "time"

// Showtime represents one screening instance. It is created once during
// parsing and never merged or updated in place.
type Showtime struct {
	Start         time.Time `json:"datetime"`
	FormattedTime string    `json:"formatted_time"`
	FormattedDate string    `json:"formatted_date"`
	SoldOut       bool      `json:"sold_out"`
	URL           string    `json:"url"`
}

// NewShowtime builds a Showtime with its display strings derived from the
// start timestamp. The strings have no independent source of truth.
func NewShowtime(start time.Time, soldOut bool, url string) Showtime {
	return Showtime{
		Start:         start,
		FormattedTime: start.Format("03:04 PM"),
		FormattedDate: start.Format("January 02, 2006"),
		SoldOut:       soldOut,
		URL:           url,
	}
}

// Movie represents one unique title appearing in the listing window. Identity
// is the exact title string: items on different days sharing a title merge
// into one record, and ID repeats the title so clients keyed on it survive
// refreshes.
type Movie struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Showtimes []Showtime `json:"showtimes"`

	// Enrichment fields, absent until the catalog lookup runs and left
	// absent when it fails.
	PosterPath   string `json:"poster_path,omitempty"`
	BackdropPath string `json:"backdrop_path,omitempty"`
	Overview     string `json:"overview,omitempty"`
}
