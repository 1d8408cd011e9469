package catalog

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// sheetEscapePattern matches the escape artifact some spreadsheet libraries
// leave behind for carriage returns inside cells.
var sheetEscapePattern = regexp.MustCompile(`(?i)_x000d_`)

// CleanText removes carriage returns and spreadsheet escape artifacts. It runs
// on every cell value on both the read and write path, not just generated
// ones, so artifacts never survive a round trip.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")
	return sheetEscapePattern.ReplaceAllString(text, "")
}

// StripHTML returns the text content of an HTML fragment with all markup
// removed. Plain text passes through unchanged.
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	if !strings.ContainsRune(fragment, '<') {
		return fragment
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

// TextLength is the stripped, trimmed length of an HTML fragment in runes.
// Eligibility thresholds count characters of visible text, not markup.
func TextLength(fragment string) int {
	return utf8.RuneCountInString(strings.TrimSpace(StripHTML(fragment)))
}
