// Package prompt merges prompt fragments into the final positive and
// negative prompt strings sent to the generation call. Pure text work,
// no side effects.
package prompt

import (
	"regexp"
	"strings"

	"diotrix/internal/models"
)

// Delimiter joins the positive prompt fragments.
const Delimiter = " | "

// Composed is the result of merging the prompt fragments.
type Composed struct {
	Positive string `json:"positive"`
	Negative string `json:"negative,omitempty"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanText collapses runs of whitespace to one space and trims the ends.
func cleanText(value string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(value, " "))
}

// Compose joins base, "Style: <name>", the style tagline and each
// non-empty extra, in that fixed order. No reordering, truncation or
// deduplication. Negative is empty when the input was blank.
func Compose(base, negative string, style *models.StylePreset, extras []string) Composed {
	var parts []string

	if cleaned := cleanText(base); cleaned != "" {
		parts = append(parts, cleaned)
	}

	if style != nil && style.Name != "" {
		parts = append(parts, "Style: "+cleanText(style.Name))
		if style.Tagline != "" {
			parts = append(parts, cleanText(style.Tagline))
		}
	}

	for _, extra := range extras {
		if cleaned := cleanText(extra); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	return Composed{
		Positive: strings.Join(parts, Delimiter),
		Negative: cleanText(negative),
	}
}
