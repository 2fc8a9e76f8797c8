package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marquee/internal/pipeline"
	"marquee/internal/schedule"
	"marquee/internal/server"
	"marquee/internal/services/tmdb"
	"marquee/internal/testsupport"
)

const calendarHTML = `<html><body>
<div class="calendar-list-day">
  <div class="date">Mon August 31</div>
  <div class="item">
    <span class="calendar-list-showtimes">
      <a class="title" href="/film/alien">Alien</a>
      <a href="/checkout/1">7:00 PM</a>
    </span>
  </div>
</div>
</body></html>`

type stubSearcher struct {
	image []byte
}

func (s *stubSearcher) SearchMovie(context.Context, string) (*tmdb.Response, error) {
	return &tmdb.Response{Results: []tmdb.Result{{PosterPath: "/alien.jpg", Overview: "overview"}}}, nil
}

func (s *stubSearcher) FetchImage(_ context.Context, imagePath string) ([]byte, error) {
	if s.image == nil {
		return nil, errors.New("no such image")
	}
	return s.image, nil
}

func newTestAPI(t *testing.T, calendarStatus int, searcher tmdb.Searcher) *httptest.Server {
	t.Helper()
	venueServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calendarStatus != http.StatusOK {
			http.Error(w, "unavailable", calendarStatus)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(calendarHTML))
	}))
	t.Cleanup(venueServer.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithVenueBaseURL(venueServer.URL))
	p, err := pipeline.New(cfg, nil, pipeline.WithSearcher(searcher))
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	api := httptest.NewServer(server.New(cfg.Paths.Bind, p, nil).Handler())
	t.Cleanup(api.Close)
	return api
}

func TestMoviesEndpoint(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, &stubSearcher{image: []byte("jpeg")})

	resp, err := http.Get(api.URL + "/api/movies")
	if err != nil {
		t.Fatalf("GET /api/movies: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var movies []struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
		Showtimes  []struct {
			FormattedTime string `json:"formatted_time"`
			FormattedDate string `json:"formatted_date"`
			SoldOut       bool   `json:"sold_out"`
			URL           string `json:"url"`
		} `json:"showtimes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Alien" {
		t.Fatalf("movies = %+v", movies)
	}
	if movies[0].PosterPath != "/alien.jpg" {
		t.Errorf("poster_path = %q, want enrichment applied", movies[0].PosterPath)
	}
	if len(movies[0].Showtimes) != 1 || movies[0].Showtimes[0].FormattedTime != "07:00 PM" {
		t.Errorf("showtimes = %+v", movies[0].Showtimes)
	}
}

func TestMoviesEndpointFetchFailure(t *testing.T) {
	api := newTestAPI(t, http.StatusBadGateway, nil)

	resp, err := http.Get(api.URL + "/api/movies")
	if err != nil {
		t.Fatalf("GET /api/movies: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 for upstream fetch failure", resp.StatusCode)
	}
}

func TestCreateCalendarEndpoint(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, nil)

	// Round-trip: the export body is the movie records the list endpoint
	// served, posted back verbatim.
	resp, err := http.Get(api.URL + "/api/movies")
	if err != nil {
		t.Fatalf("GET /api/movies: %v", err)
	}
	var movies []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		t.Fatalf("decode movies: %v", err)
	}
	resp.Body.Close()
	if len(movies) == 0 {
		t.Fatal("no movies to export")
	}

	body, _ := json.Marshal(map[string]any{"selectedMovies": movies})
	resp, err = http.Post(api.URL+"/api/create-calendar", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/create-calendar: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".ics") {
		t.Errorf("content disposition = %q", cd)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(buf.String(), "SUMMARY:Alien") {
		t.Error("calendar body missing event summary")
	}
}

func TestCreateCalendarWithoutVenue(t *testing.T) {
	// Export consumes the posted records only; a dead venue must not matter.
	api := newTestAPI(t, http.StatusBadGateway, nil)

	selection := []schedule.Movie{{
		ID:    "Alien",
		Title: "Alien",
		Showtimes: []schedule.Showtime{
			schedule.NewShowtime(time.Date(2026, time.August, 31, 19, 0, 0, 0, time.UTC), false, ""),
		},
	}}
	body, _ := json.Marshal(map[string]any{"selectedMovies": selection})
	resp, err := http.Post(api.URL+"/api/create-calendar", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/create-calendar: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 during venue outage", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(buf.String(), "SUMMARY:Alien") {
		t.Error("calendar body missing event summary")
	}
}

func TestCreateCalendarEmptySelection(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, nil)

	body, _ := json.Marshal(map[string][]schedule.Movie{"selectedMovies": {}})
	resp, err := http.Post(api.URL+"/api/create-calendar", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/create-calendar: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty selection", resp.StatusCode)
	}
}

func TestCreateCalendarMalformedBody(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, nil)

	resp, err := http.Post(api.URL+"/api/create-calendar", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /api/create-calendar: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed body", resp.StatusCode)
	}
}

func TestImageEndpoint(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, &stubSearcher{image: []byte("fake image bytes")})

	resp, err := http.Get(api.URL + "/api/image/poster.jpg")
	if err != nil {
		t.Fatalf("GET /api/image: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if buf.String() != "fake image bytes" {
		t.Errorf("body = %q", buf.String())
	}
}

func TestImageEndpointNotFound(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, &stubSearcher{})

	resp, err := http.Get(api.URL + "/api/image/missing.jpg")
	if err != nil {
		t.Fatalf("GET /api/image: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unresolvable image", resp.StatusCode)
	}
}

func TestStatusEndpoint(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, nil)

	resp, err := http.Get(api.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var status struct {
		Venue             string `json:"venue"`
		CacheFresh        bool   `json:"cache_fresh"`
		EnrichmentEnabled bool   `json:"enrichment_enabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Venue == "" {
		t.Error("status should report venue name")
	}
	if status.EnrichmentEnabled {
		t.Error("enrichment should be off with nil searcher")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t, http.StatusOK, nil)

	resp, err := http.Post(api.URL+"/api/movies", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST /api/movies: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
