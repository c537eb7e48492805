package schemacheck

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Pointer is an immutable RFC 6901 JSON Pointer. The zero value addresses the
// document root.
type Pointer struct {
	tokens []string
}

// ParsePointer parses the string form of a pointer ("" or "/a/b~1c").
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return Pointer{}, fmt.Errorf("json pointer %q does not begin with '/'", s)
	}
	raw := strings.Split(s[1:], "/")
	tokens := make([]string, len(raw))
	for i, tok := range raw {
		if !validEscapes(tok) {
			return Pointer{}, fmt.Errorf("json pointer %q has an invalid escape in token %q", s, tok)
		}
		tokens[i] = pointerUnescaper.Replace(tok)
	}
	return Pointer{tokens: tokens}, nil
}

// MustParsePointer is ParsePointer for literals; it panics on error.
func MustParsePointer(s string) Pointer {
	p, err := ParsePointer(s)
	if err != nil {
		panic(err)
	}
	return p
}

func validEscapes(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			continue
		}
		if i+1 >= len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
			return false
		}
	}
	return true
}

// Append returns a new pointer with the given raw (unescaped) tokens added.
// The receiver is left untouched.
func (p Pointer) Append(tokens ...string) Pointer {
	if len(tokens) == 0 {
		return p
	}
	out := make([]string, 0, len(p.tokens)+len(tokens))
	out = append(out, p.tokens...)
	out = append(out, tokens...)
	return Pointer{tokens: out}
}

// AppendIndex returns a new pointer addressing array element i.
func (p Pointer) AppendIndex(i int) Pointer { return p.Append(strconv.Itoa(i)) }

// Tokens returns a copy of the unescaped reference tokens.
func (p Pointer) Tokens() []string { return append([]string(nil), p.tokens...) }

// Len is the number of reference tokens.
func (p Pointer) Len() int { return len(p.tokens) }

// IsRoot reports whether p addresses the whole document.
func (p Pointer) IsRoot() bool { return len(p.tokens) == 0 }

// Equal compares token by token.
func (p Pointer) Equal(o Pointer) bool {
	if len(p.tokens) != len(o.tokens) {
		return false
	}
	for i := range p.tokens {
		if p.tokens[i] != o.tokens[i] {
			return false
		}
	}
	return true
}

// String renders the escaped pointer; the root renders as "".
func (p Pointer) String() string {
	if len(p.tokens) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, tok := range p.tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(tok))
	}
	return b.String()
}

// MarshalText renders the escaped pointer.
func (p Pointer) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText parses an escaped pointer.
func (p *Pointer) UnmarshalText(b []byte) error {
	v, err := ParsePointer(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
