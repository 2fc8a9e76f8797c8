package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layouts tried against the normalized date label. Labels without a year
// default to the reference clock's year, matching how the venue publishes a
// rolling multi-week window.
var dateLayouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"1/2/2006",
	"2006-01-02",
	"January 2",
	"Jan 2",
}

var timeLayouts = []string{
	"3:04PM",
	"3:04 PM",
	"15:04",
	"3PM",
}

var (
	weekdayNames = map[string]bool{
		"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
		"friday": true, "saturday": true, "sunday": true,
		"mon": true, "tue": true, "tues": true, "wed": true, "thu": true,
		"thur": true, "thurs": true, "fri": true, "sat": true, "sun": true,
	}
	ordinalSuffix = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)
)

// resolveStart combines a day group's date label with an item's time label
// into a single absolute timestamp in the venue's timezone.
func (p *Parser) resolveStart(dateLabel, timeLabel string) (time.Time, error) {
	if day, err := p.resolveDate(dateLabel); err == nil {
		if clock, err := resolveClock(timeLabel); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				clock.Hour(), clock.Minute(), 0, 0, p.loc), nil
		}
	}

	// Natural-language fallback for label shapes the layouts above don't
	// anticipate.
	combined := normalizeDateLabel(dateLabel) + " " + strings.ToUpper(timeLabel)
	parsed, err := dateparse.ParseIn(combined, p.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve %q + %q: %w", dateLabel, timeLabel, err)
	}
	if parsed.Year() == 0 {
		parsed = parsed.AddDate(p.referenceYear(), 0, 0)
	}
	return parsed, nil
}

func (p *Parser) resolveDate(label string) (time.Time, error) {
	normalized := normalizeDateLabel(label)
	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, normalized, p.loc)
		if err != nil {
			continue
		}
		if parsed.Year() == 0 {
			parsed = time.Date(p.referenceYear(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, p.loc)
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date label %q", label)
}

func resolveClock(label string) (time.Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, ".", "")
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time label %q", label)
}

func (p *Parser) referenceYear() int {
	return p.now().In(p.loc).Year()
}

// normalizeDateLabel strips punctuation, a leading weekday name, and ordinal
// suffixes: "Friday, August 3rd" becomes "August 3".
func normalizeDateLabel(label string) string {
	cleaned := strings.NewReplacer(",", " ", ".", " ").Replace(label)
	cleaned = ordinalSuffix.ReplaceAllString(cleaned, "$1")
	fields := strings.Fields(cleaned)
	if len(fields) > 1 && weekdayNames[strings.ToLower(fields[0])] {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}
