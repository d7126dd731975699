package htmltpl

import (
	"html/template"
	"strings"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/normalize"
)

// funcMap holds the filters the templates rely on.
var funcMap = template.FuncMap{
	"slugify":       domain.Slugify,
	"join":          strings.Join,
	"hasPrefix":     strings.HasPrefix,
	"formatPhone":   normalize.Phone,
	"truncateWords": truncateWords,
	"pluralize":     pluralize,
}

// truncateWords keeps the first n words, appending an ellipsis when the
// text was cut.
func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}

// pluralize picks the singular form only for exactly one.
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
