package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized texts for message IDs.
// data carries the message's structured fields rendered as strings (for
// example "expected" or "found"); "{name}" placeholders are replaced with them.
type Translator interface {
	Message(id string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogs = map[string]map[string]string{
	"en": {
		"incorrect_type":         "value has incorrect type (found {found}, expected one of {expected})",
		"invalid_regex":          "regex is invalid",
		"not_a_schema":           "value has wrong type {found} (expected a schema)",
		"empty_array":            "array must have at least one element",
		"elements_not_unique":    "array elements must be unique",
		"incorrect_element_type": "array element {index} has incorrect type (found {found}, expected one of {expected})",
		"negative_integer":       "value must be a non-negative integer (found {found})",
		"not_positive":           "value must be strictly greater than zero (found {found})",
		"exclusive_without_base": "keyword is meaningless without {base}",
		"invalid_uri":            "value is not a valid URI reference",
		"incorrect_dependency":   "dependency value for {property} has incorrect type (found {found}, expected one of {expected})",
		"unknown_simple_type":    "unknown simple type {found}",
		"unknown_keywords":       "unknown keyword(s) found; ignored",
		"invalid_root":           "document is not a schema (found {found})",
	},
	"ja": {
		"incorrect_type":         "型が不正です (実際: {found}, 期待: {expected})",
		"invalid_regex":          "正規表現が不正です",
		"not_a_schema":           "値の型 {found} が不正です (スキーマが必要です)",
		"empty_array":            "配列には少なくとも1つの要素が必要です",
		"elements_not_unique":    "配列の要素が重複しています",
		"incorrect_element_type": "配列要素 {index} の型が不正です (実際: {found}, 期待: {expected})",
		"negative_integer":       "0以上の整数が必要です (実際: {found})",
		"not_positive":           "0より大きい値が必要です (実際: {found})",
		"exclusive_without_base": "{base} がないため意味を持ちません",
		"invalid_uri":            "URI参照として不正です",
		"incorrect_dependency":   "{property} の依存関係の型が不正です (実際: {found}, 期待: {expected})",
		"unknown_simple_type":    "未知の型 {found} です",
		"unknown_keywords":       "未知のキーワードを無視しました",
		"invalid_root":           "ドキュメントがスキーマではありません (実際: {found})",
	},
}

func (t dictTranslator) Message(id string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][id]
	if !ok {
		return id
	}
	return Render(tmpl, data)
}

// Render replaces "{name}" placeholders in tmpl with values from data.
// Unknown placeholders are left as-is.
func Render(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a text for the given message ID using the current Translator.
func T(id string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(id, data)
}
