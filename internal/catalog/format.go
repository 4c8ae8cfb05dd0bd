package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatNumber renders a key as a catalog number: #001, #025, #250, #1010.
func FormatNumber(k Key) string {
	return fmt.Sprintf("#%03d", int(k))
}

// DisplayName title-cases an API name, turning hyphens into spaces.
func DisplayName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "-", " "))
	if name == "" {
		return ""
	}
	return cases.Title(language.Und).String(name)
}
