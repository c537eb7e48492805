package schemacheck

import "sort"

// Dictionary maps keyword names to their checkers for one draft. It is
// immutable once frozen and safe to share between concurrent runs.
type Dictionary struct {
	draft       Draft
	entries     map[string]Checker
	boolSchemas bool
}

// Get returns the checker for keyword. Absence means the keyword is unknown
// to this draft and carries no syntax rule.
func (d *Dictionary) Get(keyword string) (Checker, bool) {
	c, ok := d.entries[keyword]
	return c, ok
}

// Draft is the draft this dictionary was built for (may be empty for custom
// dictionaries).
func (d *Dictionary) Draft() Draft { return d.draft }

// AllowsBooleanSchemas reports whether true/false are valid schemas.
func (d *Dictionary) AllowsBooleanSchemas() bool { return d.boolSchemas }

// Len is the number of known keywords.
func (d *Dictionary) Len() int { return len(d.entries) }

// Keywords lists the known keywords in sorted order.
func (d *Dictionary) Keywords() []string {
	out := make([]string, 0, len(d.entries))
	for k := range d.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Thaw returns a builder seeded with a copy of this dictionary, for adding
// custom keywords without touching the shared original.
func (d *Dictionary) Thaw() *DictionaryBuilder {
	b := NewDictionaryBuilder(d.draft)
	for k, c := range d.entries {
		b.entries[k] = c
	}
	b.boolSchemas = d.boolSchemas
	return b
}

// DictionaryBuilder assembles a Dictionary.
type DictionaryBuilder struct {
	draft       Draft
	entries     map[string]Checker
	boolSchemas bool
}

// NewDictionaryBuilder returns an empty builder for the given draft.
func NewDictionaryBuilder(draft Draft) *DictionaryBuilder {
	return &DictionaryBuilder{draft: draft, entries: map[string]Checker{}}
}

// Add registers (or replaces) the checker for keyword.
func (b *DictionaryBuilder) Add(keyword string, c Checker) *DictionaryBuilder {
	b.entries[keyword] = c
	return b
}

// Remove drops keyword.
func (b *DictionaryBuilder) Remove(keyword string) *DictionaryBuilder {
	delete(b.entries, keyword)
	return b
}

// AllowBooleanSchemas marks true/false as valid schemas.
func (b *DictionaryBuilder) AllowBooleanSchemas(allow bool) *DictionaryBuilder {
	b.boolSchemas = allow
	return b
}

// Freeze returns an immutable Dictionary. The builder may keep being used;
// later changes do not affect the returned value.
func (b *DictionaryBuilder) Freeze() *Dictionary {
	entries := make(map[string]Checker, len(b.entries))
	for k, c := range b.entries {
		entries[k] = c
	}
	return &Dictionary{draft: b.draft, entries: entries, boolSchemas: b.boolSchemas}
}
