// Package sanitize normalizes raw model output into a field value safe to
// write back into the spreadsheet.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/shoptext/descgen/catalog"
)

// Pre-compiled patterns for model-output artifacts.
var (
	// htmlFencePattern strips a leading language-tagged code fence.
	htmlFencePattern = regexp.MustCompile("^```html\\s*")
	// bareFencePattern strips a leading untagged code fence.
	bareFencePattern = regexp.MustCompile("^```\\s*")
	// closingFencePattern strips the trailing fence.
	closingFencePattern = regexp.MustCompile("\\s*```$")

	// paragraphPlainPattern matches paragraph tags without attributes.
	paragraphPlainPattern = regexp.MustCompile(`(?i)<p>`)
	// paragraphStylePattern captures an existing inline style attribute.
	paragraphStylePattern = regexp.MustCompile(`(?i)<p\s+style="([^"]*)"`)
)

const justifyStyle = "text-align: justify;"

// Normalize turns a raw successful completion into the final field value.
// The steps run in a fixed order and the whole function is idempotent:
// normalizing its own output changes nothing.
func Normalize(raw string, justify bool) string {
	text := strings.TrimSpace(raw)
	text = stripCodeFence(text)
	text = ensureWrapper(text)
	if justify {
		text = ApplyJustify(text)
	}
	return catalog.CleanText(text)
}

// stripCodeFence removes one surrounding markdown fence pair, tagged or bare.
// Models wrap HTML output in fences despite instructions not to.
func stripCodeFence(text string) string {
	switch {
	case strings.HasPrefix(text, "```html"):
		text = htmlFencePattern.ReplaceAllString(text, "")
		text = closingFencePattern.ReplaceAllString(text, "")
	case strings.HasPrefix(text, "```"):
		text = bareFencePattern.ReplaceAllString(text, "")
		text = closingFencePattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

// ensureWrapper enforces the container invariant: output begins with a
// paragraph tag and ends with the paragraph or list terminator. The closing
// tag is chosen by whether a list was opened anywhere in the text.
func ensureWrapper(text string) string {
	if !strings.HasPrefix(text, "<p>") && !strings.HasPrefix(text, "<p ") {
		text = "<p>" + text
	}
	if !strings.HasSuffix(text, "</p>") && !strings.HasSuffix(text, "</ul>") {
		if strings.Contains(text, "<ul>") {
			text += "</ul>"
		} else {
			text += "</p>"
		}
	}
	return text
}

// ApplyJustify rewrites paragraph-opening tags to carry a justify style,
// merging into pre-existing style attributes instead of duplicating them.
func ApplyJustify(text string) string {
	if text == "" {
		return text
	}
	text = paragraphPlainPattern.ReplaceAllString(text, `<p style="`+justifyStyle+`">`)
	return paragraphStylePattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := paragraphStylePattern.FindStringSubmatch(match)
		existing := groups[1]
		if strings.Contains(existing, "text-align") {
			return match
		}
		return `<p style="` + existing + `; ` + justifyStyle + `"`
	})
}
