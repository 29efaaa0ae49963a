package assemble

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

var titleCaser = cases.Title(language.English)

// humanizeTitle turns a section key into a display title: a space is
// inserted between a lowercase letter and a following uppercase letter,
// underscores become spaces, and the result is title-cased.
// "workHistory" -> "Work History", "side_projects" -> "Side Projects".
func humanizeTitle(key string) string {
	title := camelBoundary.ReplaceAllString(key, "$1 $2")
	title = strings.ReplaceAll(title, "_", " ")
	return titleCaser.String(title)
}
