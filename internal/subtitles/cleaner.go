package subtitles

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var (
	breakTag            = regexp.MustCompile(`(?i)<br\s*/?>`)
	markupTag           = regexp.MustCompile(`<[^>]*>`)
	trailingAmpersand   = regexp.MustCompile(`(?m)&\s*$`)
	spacedAmpersand     = regexp.MustCompile(`&\s{2,}`)
	blanksAroundNewline = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	excessNewlines      = regexp.MustCompile(`\n{3,}`)
)

// NormalizeCueText turns the raw payload of a SAMI block, after color
// rewriting, into plain cue text. The order of the steps matters: break tags
// must become newlines before the remaining markup is stripped, and entities
// are decoded only once markup is gone.
func NormalizeCueText(text string) string {
	text = breakTag.ReplaceAllString(text, "\n")
	text = stripMarkup(text)
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "\u00a0", " ")

	// Numeric line-break references that survived decoding, e.g. double escaped.
	text = strings.ReplaceAll(text, "&#13;&#10;", "\n")
	text = strings.ReplaceAll(text, "&#10;", "\n")
	text = strings.ReplaceAll(text, "&#13;", "\n")

	// Legacy authoring tools used a bare '&' as a line break. This also
	// rewrites a sentence that genuinely ends with '&'.
	text = trailingAmpersand.ReplaceAllString(text, "\n")
	text = spacedAmpersand.ReplaceAllString(text, "\n")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blanksAroundNewline.ReplaceAllString(text, "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// IsBlankCue reports whether normalized cue text carries nothing to display.
func IsBlankCue(text string) bool {
	if text == "&nbsp;" {
		return true
	}
	// unicode.IsSpace covers U+00A0.
	return strings.TrimFunc(text, unicode.IsSpace) == ""
}

// stripMarkup removes every tag except the <c.class> and </c...> wrappers
// produced by ColorRegistry.Rewrite.
func stripMarkup(text string) string {
	return markupTag.ReplaceAllStringFunc(text, func(tag string) string {
		if strings.HasPrefix(tag, "<c.") || strings.HasPrefix(tag, "</c") {
			return tag
		}
		return ""
	})
}
