package xml_parser

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// SanitizeDescription strips markup and control characters and collapses whitespace
func SanitizeDescription(raw string) string {
	if raw == "" {
		return ""
	}
	// block tags become word boundaries before they are stripped
	text := strings.NewReplacer("<br>", " ", "<br/>", " ", "<br />", " ", "</p>", " ", "</li>", " ").Replace(raw)
	text = html.UnescapeString(stripPolicy.Sanitize(text))
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), " ")
}
