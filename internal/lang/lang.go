// Package lang defines the closed set of languages the platform serves
// content in. English is the canonical source language; every other code is a
// translation target.
package lang

import (
	"fmt"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Code identifies one of the supported languages.
type Code string

const (
	English Code = "en"
	Spanish Code = "es"
	French  Code = "fr"
	Chinese Code = "zh"
	Russian Code = "ru"
)

// ErrUnsupported is returned for language codes outside the supported set.
var ErrUnsupported = fmt.Errorf("unsupported language code")

var supported = []Code{English, Spanish, French, Chinese, Russian}

var tags = map[Code]language.Tag{
	English: language.English,
	Spanish: language.Spanish,
	French:  language.French,
	Chinese: language.Chinese,
	Russian: language.Russian,
}

// Supported returns the supported codes in a stable order.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// Parse validates a raw language code against the supported set.
func Parse(raw string) (Code, error) {
	c := Code(raw)
	if _, ok := tags[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
	}
	return c, nil
}

// ParseOrDefault behaves like Parse but maps the empty string to English,
// matching the API's "no language given" behaviour.
func ParseOrDefault(raw string) (Code, error) {
	if raw == "" {
		return English, nil
	}
	return Parse(raw)
}

// Valid reports whether c belongs to the supported set.
func (c Code) Valid() bool {
	_, ok := tags[c]
	return ok
}

// Tag returns the BCP 47 tag for a supported code.
func (c Code) Tag() language.Tag {
	return tags[c]
}

// SelfName returns the language's name in the language itself, e.g. "español".
func (c Code) SelfName() string {
	return display.Self.Name(c.Tag())
}

// Names maps every supported code to its self-name. Served by /api/languages.
func Names() map[Code]string {
	names := make(map[Code]string, len(supported))
	for _, c := range supported {
		names[c] = c.SelfName()
	}
	return names
}

// ISO 639-3 codes reported by whatlanggo for the supported set.
var iso3 = map[string]Code{
	"eng": English,
	"spa": Spanish,
	"fra": French,
	"cmn": Chinese,
	"rus": Russian,
}

// Detect guesses the language of text, falling back to English when the
// detector is unsure or reports a language outside the supported set.
func Detect(text string) Code {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return English
	}
	if c, ok := iso3[whatlanggo.LangToString(info.Lang)]; ok {
		return c
	}
	return English
}
