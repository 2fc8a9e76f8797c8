package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// trailingParenthetical matches parenthetical suffixes such as "(1979)",
// "(4K Restoration)", or "(35mm)" at the end of a scraped title.
var trailingParenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// CleanLookupTitle strips parenthetical suffixes and collapses whitespace so
// a scraped listing title lines up with the catalog's canonical titles.
// "Alien (1979) (4K Restoration)" becomes "Alien". The cleaned string is used
// for lookups only; the scraped title stays on the record untouched.
func CleanLookupTitle(title string) string {
	cleaned := strings.TrimSpace(title)
	for {
		stripped := trailingParenthetical.ReplaceAllString(cleaned, "")
		if stripped == cleaned {
			break
		}
		cleaned = strings.TrimSpace(stripped)
	}
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		// A title that was nothing but parentheticals is better than none.
		return strings.TrimSpace(title)
	}
	return cleaned
}

// DisplayTitle softens all-caps listing titles ("TAXI DRIVER") into title
// case for table and calendar rendering. Mixed-case titles pass through
// unchanged since their casing is deliberate.
func DisplayTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" || !isShouting(title) {
		return title
	}
	return cases.Title(language.English).String(strings.ToLower(title))
}

func isShouting(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
