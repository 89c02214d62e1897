// Package i18n provides short localized titles for issue codes.
package i18n

import (
	"sort"
	"strings"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message, referenced as
// {name} in the dictionary text (for example "{attribute}").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"mandatory_missing":     "mandatory attribute missing{: attribute}",
		"forbidden_present":     "forbidden attribute present{: attribute}",
		"invalid_dimension":     "invalid dimension",
		"invalid_range":         "value out of range",
		"axis_direction":        "invalid axis direction",
		"unexpected_type":       "unexpected type",
		"inconsistent_value":    "inconsistent value",
		"equality_contract":     "equality contract violated",
		"invalid_code_list":     "invalid code list value",
		"invalid_name":          "invalid name",
		"transform_mismatch":    "transformed coordinate mismatch",
		"inverse_mismatch":      "inverse transform mismatch",
		"derivative_mismatch":   "derivative mismatch",
		"consistency_mismatch":  "inconsistent batch transform",
		"unsupported_operation": "unsupported operation",
	},
	"fr": {
		"mandatory_missing":     "attribut obligatoire absent{ : attribute}",
		"forbidden_present":     "attribut interdit présent{ : attribute}",
		"invalid_dimension":     "dimension invalide",
		"invalid_range":         "valeur hors limites",
		"axis_direction":        "direction d'axe invalide",
		"unexpected_type":       "type inattendu",
		"inconsistent_value":    "valeur incohérente",
		"equality_contract":     "contrat d'égalité non respecté",
		"invalid_code_list":     "valeur de liste de codes invalide",
		"invalid_name":          "nom invalide",
		"transform_mismatch":    "coordonnée transformée incorrecte",
		"inverse_mismatch":      "transformation inverse incorrecte",
		"derivative_mismatch":   "dérivée incorrecte",
		"consistency_mismatch":  "transformation par lot incohérente",
		"unsupported_operation": "opération non supportée",
	},
}

// Languages returns the languages of the built-in dictionaries.
func Languages() []string {
	out := make([]string, 0, len(dictionaries))
	for lang := range dictionaries {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// Message looks code up in the language dictionary, then in English. Unknown
// codes are returned unchanged. A {prefix key} group is expanded to prefix
// followed by data[key], or dropped when the key is absent.
func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		if msg, ok = dictionaries["en"][code]; !ok {
			return code
		}
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(msg, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(msg[open:], '}')
		if end < 0 {
			break
		}
		b.WriteString(msg[:open])
		group := msg[open+1 : open+end]
		prefix, key := "", group
		if i := strings.LastIndexAny(group, " :"); i >= 0 {
			prefix, key = group[:i+1], group[i+1:]
		}
		if v := data[key]; v != "" {
			b.WriteString(prefix)
			b.WriteString(v)
		}
		msg = msg[open+end+1:]
	}
	b.WriteString(msg)
	return b.String()
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language. Unknown languages
// fall back to English; a region subtag ("fr-CA") is ignored.
func SetLanguage(lang string) {
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
