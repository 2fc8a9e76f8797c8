package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"marquee/internal/schedule"
	"marquee/internal/services"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.September, 1, 12, 30, 45, 0, time.UTC)
	}
}

func TestExportEmitsEventPerShowtime(t *testing.T) {
	exporter := New("Metrograph Theater", "Metrograph Theater NYC", nil, WithClock(fixedClock()))

	movies := []schedule.Movie{
		{
			ID:    "Alien",
			Title: "Alien",
			Showtimes: []schedule.Showtime{
				{Start: time.Date(2026, time.September, 1, 23, 0, 0, 0, time.UTC), URL: "https://metrograph.com/alien"},
				{Start: time.Date(2026, time.September, 2, 1, 15, 0, 0, time.UTC)},
			},
			Overview: "A commercial crew answers a distress call.",
		},
		{
			ID:    "Stalker",
			Title: "Stalker",
			Showtimes: []schedule.Showtime{
				{Start: time.Date(2026, time.September, 3, 18, 30, 0, 0, time.UTC)},
			},
		},
	}

	out, err := exporter.Export(movies)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if got := strings.Count(out, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("got %d events, want 3", got)
	}
	for _, want := range []string{
		"SUMMARY:Alien",
		"SUMMARY:Stalker",
		"DTSTART:20260901T230000Z",
		"DTEND:20260902T010000Z",
		"URL:https://metrograph.com/alien",
		"LOCATION:Metrograph Theater NYC",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized calendar missing %q", want)
		}
	}
}

func TestExportEmptySelection(t *testing.T) {
	exporter := New("Metrograph Theater", "", nil, WithClock(fixedClock()))

	if _, err := exporter.Export(nil); !errors.Is(err, services.ErrEmptySelection) {
		t.Errorf("no movies: err = %v, want ErrEmptySelection", err)
	}

	noShowtimes := []schedule.Movie{{ID: "Alien", Title: "Alien"}}
	if _, err := exporter.Export(noShowtimes); !errors.Is(err, services.ErrEmptySelection) {
		t.Errorf("no showtimes: err = %v, want ErrEmptySelection", err)
	}
}

func TestFilename(t *testing.T) {
	exporter := New("Metrograph Theater", "", nil, WithClock(fixedClock()))
	if got, want := exporter.Filename(), "metrograph_events_20260901_123045.ics"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFilterPreservesScheduleOrder(t *testing.T) {
	movies := []schedule.Movie{
		{ID: "A", Title: "A"},
		{ID: "B", Title: "B"},
		{ID: "C", Title: "C"},
	}

	got := Filter(movies, []string{"C", "A", "missing"})
	if len(got) != 2 || got[0].ID != "A" || got[1].ID != "C" {
		t.Errorf("Filter returned %+v, want schedule order A then C", got)
	}

	if got := Filter(movies, nil); got != nil {
		t.Errorf("empty selection should filter to nothing, got %+v", got)
	}
}
