// Package locale formats dates and looks up UI strings for the supported
// display languages.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported display language.
type Lang string

const (
	English Lang = "en"
	French  Lang = "fr"

	Default = English
)

var supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(supported)

// Languages lists the supported languages in display order.
func Languages() []Lang {
	return []Lang{English, French}
}

// Parse maps a lang query value to a supported language, falling back to
// Default.
func Parse(s string) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English
	case French:
		return French
	}
	return Default
}

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	base, _ := supported[idx].Base()
	return Parse(base.String())
}

// Label is the language's own name, for the language toggle.
func (l Lang) Label() string {
	if l == French {
		return "Français"
	}
	return "English"
}
