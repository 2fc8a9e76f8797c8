package schedule

import (
	"testing"
	"time"
)

func TestResolveStartLabelShapes(t *testing.T) {
	parser := testParser(t)
	cases := []struct {
		name      string
		dateLabel string
		timeLabel string
		want      time.Time
	}{
		{"weekday prefix", "Friday August 7", "7:00pm", time.Date(2026, 8, 7, 19, 0, 0, 0, testLoc)},
		{"comma and ordinal", "Friday, August 7th", "7:00 PM", time.Date(2026, 8, 7, 19, 0, 0, 0, testLoc)},
		{"abbreviated month", "Fri Aug 7", "1:15pm", time.Date(2026, 8, 7, 13, 15, 0, 0, testLoc)},
		{"explicit year", "August 7 2027", "11:30am", time.Date(2027, 8, 7, 11, 30, 0, 0, testLoc)},
		{"numeric date", "8/7/2026", "12:00pm", time.Date(2026, 8, 7, 12, 0, 0, 0, testLoc)},
		{"iso date", "2026-08-07", "23:45", time.Date(2026, 8, 7, 23, 45, 0, 0, testLoc)},
		{"midnight", "August 7", "12:00am", time.Date(2026, 8, 7, 0, 0, 0, 0, testLoc)},
		{"hour only", "August 7", "7pm", time.Date(2026, 8, 7, 19, 0, 0, 0, testLoc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parser.resolveStart(tc.dateLabel, tc.timeLabel)
			if err != nil {
				t.Fatalf("resolveStart(%q, %q): %v", tc.dateLabel, tc.timeLabel, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("resolveStart(%q, %q) = %v, want %v",
					tc.dateLabel, tc.timeLabel, got, tc.want)
			}
		})
	}
}

func TestResolveStartRejectsGarbage(t *testing.T) {
	parser := testParser(t)
	if _, err := parser.resolveStart("sometime", "later"); err == nil {
		t.Fatal("expected error for unparseable labels")
	}
}

func TestResolveStartUsesVenueTimezone(t *testing.T) {
	parser := testParser(t)
	got, err := parser.resolveStart("August 7", "7:00pm")
	if err != nil {
		t.Fatal(err)
	}
	if got.Location().String() != "America/New_York" {
		t.Errorf("location = %v, want venue timezone", got.Location())
	}
}

func TestNormalizeDateLabel(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Friday August 7", "August 7"},
		{"Friday, August 7th", "August 7"},
		{"Sat. Aug. 8", "Aug 8"},
		{"August 21st", "August 21"},
		{"August 7", "August 7"},
	}
	for _, tc := range cases {
		if got := normalizeDateLabel(tc.input); got != tc.want {
			t.Errorf("normalizeDateLabel(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
