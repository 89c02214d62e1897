package util

import (
	"strings"

	"github.com/geoapi/geoconform/util"
)

// Text is an international string without translations.
type Text string

func (t Text) String() string          { return string(t) }
func (t Text) Localized(string) string { return string(t) }
func (t Text) IsAbsent() bool          { return t == "" }

// InternationalString is a text with translations keyed by language tag.
type InternationalString struct {
	Default      string
	Translations map[string]string
}

// NewInternationalString creates a text with no translation.
func NewInternationalString(text string) *InternationalString {
	return &InternationalString{Default: text}
}

// Add records the translation for lang and returns s.
func (s *InternationalString) Add(lang, text string) *InternationalString {
	if s.Translations == nil {
		s.Translations = map[string]string{}
	}
	s.Translations[strings.ToLower(lang)] = text
	return s
}

func (s *InternationalString) String() string { return s.Default }

// Localized looks up lang, then its primary subtag ("fr" for "fr-CA").
func (s *InternationalString) Localized(lang string) string {
	lang = strings.ToLower(lang)
	if t, ok := s.Translations[lang]; ok {
		return t
	}
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		if t, ok := s.Translations[lang[:i]]; ok {
			return t
		}
	}
	return s.Default
}

// IsAbsent reports whether there is no text at all.
func (s *InternationalString) IsAbsent() bool {
	return s == nil || s.Default == "" && len(s.Translations) == 0
}

// OrNil returns Text(s), or nil for the empty string.
func OrNil(s string) util.InternationalString {
	if s == "" {
		return nil
	}
	return Text(s)
}
