// Package ecma validates regular expressions against the ECMA-262 pattern
// grammar, which JSON Schema mandates for "pattern" and "patternProperties".
// Go's regexp (RE2) accepts and rejects different patterns, so it is not used.
package ecma

import (
	"github.com/dlclark/regexp2"
)

// ValidPattern reports whether p is a valid ECMAScript regular expression.
// Invalid syntax is a false result, never a panic.
func ValidPattern(p string) (ok bool) {
	if !ecmaGroups(p) {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_, err := regexp2.Compile(p, regexp2.ECMAScript)
	return err == nil
}

// ecmaGroups rejects the "(?" group forms regexp2 accepts but ECMA-262 does
// not: inline options, comments, atomic groups, and .NET/Python named groups.
// Escapes and character classes are skipped.
func ecmaGroups(p string) bool {
	inClass := false
	for i := 0; i < len(p); i++ {
		switch c := p[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(' && i+1 < len(p) && p[i+1] == '?':
			if !groupPrefix(p[i+2:]) {
				return false
			}
		}
	}
	return true
}

// groupPrefix reports whether rest (the text after "(?") starts an ECMA group.
func groupPrefix(rest string) bool {
	if rest == "" {
		return false
	}
	switch rest[0] {
	case ':', '=', '!':
		return true
	case '<':
	default:
		return false
	}
	if len(rest) > 1 && (rest[1] == '=' || rest[1] == '!') {
		return true
	}
	// (?<name>
	n := 0
	for i := 1; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c == '>':
			return n > 0
		case c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80:
		case c >= '0' && c <= '9' && n > 0:
		default:
			return false
		}
		n++
	}
	return false
}
