// Package locale resolves the active site locale and the bilingual display
// values of forms and content.
//
// The site is English-first with Armenian as the secondary locale. Every
// bilingual pair (base, baseHy) is displayed with the same rule: the Armenian
// value is used only when the active locale is Armenian and the value is
// non-empty; otherwise the base value is used.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported site locale.
type Locale string

const (
	// English is the primary (base) locale.
	English Locale = "en"
	// Armenian is the secondary locale.
	Armenian Locale = "hy"
)

// Default is used when nothing better can be matched.
const Default = English

var supported = []language.Tag{
	language.English,
	language.Armenian,
}

var matcher = language.NewMatcher(supported)

// Parse matches raw (a locale code, a BCP 47 tag or an Accept-Language
// header value) against the supported locales. Anything that does not match
// resolves to [Default].
func Parse(raw string) Locale {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Default
	}

	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return Default
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}

	base, _ := supported[index].Base()
	return Locale(base.String())
}

// All returns the supported locales, primary first.
func All() []Locale {
	return []Locale{English, Armenian}
}

// IsSupported reports whether raw names a supported locale exactly.
func IsSupported(raw string) bool {
	switch Locale(raw) {
	case English, Armenian:
		return true
	}
	return false
}

// IsSecondary reports whether l is the secondary locale.
func (l Locale) IsSecondary() bool {
	return l == Armenian
}

// String implements [fmt.Stringer].
func (l Locale) String() string {
	return string(l)
}

// Resolve returns the value of a bilingual pair to display in locale l.
// An Armenian value that is empty or only whitespace falls back to base, the
// same blank test the form validator applies to required translations.
func Resolve(base, hy string, l Locale) string {
	if l.IsSecondary() && strings.TrimSpace(hy) != "" {
		return hy
	}
	return base
}

// ResolveOption returns the label of option i of the parallel option arrays
// to display in locale l. The Armenian array may be shorter than the base one.
func ResolveOption(options, optionsHy []string, i int, l Locale) string {
	if i < 0 || i >= len(options) {
		return ""
	}

	var hy string
	if i < len(optionsHy) {
		hy = optionsHy[i]
	}
	return Resolve(options[i], hy, l)
}
