package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// names is read-only after package init and safe for concurrent lookups.
var names = display.English.Languages()

// Name returns the English display name for an ISO 639 language code, for
// example "fr" -> "French". Unknown or unparseable codes yield "".
func Name(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return names.Name(tag)
}
