package schemacheck

import "fmt"

// Checker validates the syntax of one keyword in one schema node. The Tree
// must be positioned at an object containing the keyword.
//
// Syntax problems go to the report. The returned pointers address the
// sub-schemas found in the keyword's value, for the walker to descend into.
// A non-nil error is a fault (the keyword is not in the node), not a schema
// authoring mistake.
type Checker interface {
	CheckSyntax(report *Report, tree Tree) ([]Pointer, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(report *Report, tree Tree) ([]Pointer, error)

func (f CheckerFunc) CheckSyntax(report *Report, tree Tree) ([]Pointer, error) {
	return f(report, tree)
}

// TypeRestricted is implemented by checkers that declare the value types they
// accept before any further rule runs.
type TypeRestricted interface {
	AcceptedTypes() NodeTypes
}

// FurtherCheck runs keyword-specific rules once the value's type passed.
type FurtherCheck func(kc *KeywordContext)

// KeywordContext is what a FurtherCheck sees: the keyword's value plus helpers
// for reporting and for declaring sub-schema locations.
type KeywordContext struct {
	Keyword string
	Tree    Tree
	Value   any
	Type    NodeType
	Report  *Report
	// SchemaTypes are the value types that count as a schema in this draft.
	SchemaTypes NodeTypes

	pointers []Pointer
}

// Error reports a syntax error for this keyword. kv alternates field names
// and values; a malformed kv panics.
func (kc *KeywordContext) Error(id MessageID, kv ...any) {
	kc.Report.Error(kc.message(id, kv))
}

// Warn reports a warning for this keyword.
func (kc *KeywordContext) Warn(id MessageID, kv ...any) {
	kc.Report.Warn(kc.message(id, kv))
}

func (kc *KeywordContext) message(id MessageID, kv []any) Message {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("schemacheck: %s %s: odd number of field arguments", kc.Keyword, id))
	}
	var fields map[string]any
	if len(kv) > 0 {
		fields = make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			name, ok := kv[i].(string)
			if !ok || name == "" {
				panic(fmt.Sprintf("schemacheck: %s %s: field name %v is not a non-empty string", kc.Keyword, id, kv[i]))
			}
			fields[name] = kv[i+1]
		}
	}
	return Message{Keyword: kc.Keyword, ID: id, Pointer: kc.Tree.Pointer().String(), Fields: fields}
}

// Descend records the sub-schema at <current>/<keyword>/<tokens...>.
func (kc *KeywordContext) Descend(tokens ...string) {
	kc.pointers = append(kc.pointers, kc.Tree.Pointer().Append(kc.Keyword).Append(tokens...))
}

// DescendIndex records the sub-schema at <current>/<keyword>/<i>.
func (kc *KeywordContext) DescendIndex(i int) {
	kc.pointers = append(kc.pointers, kc.Tree.Pointer().Append(kc.Keyword).AppendIndex(i))
}

// IsSchema reports whether v has a schema shape in this draft.
func (kc *KeywordContext) IsSchema(v any) bool { return kc.SchemaTypes.Contains(Classify(v)) }

// Pointers returns the sub-schema locations recorded so far.
func (kc *KeywordContext) Pointers() []Pointer { return append([]Pointer(nil), kc.pointers...) }

// typedChecker is the common shape of every built-in checker: a type check
// that fails fast for the keyword, then optional further rules.
type typedChecker struct {
	keyword string
	types   NodeTypes
	schemas NodeTypes
	further FurtherCheck
}

// NewChecker returns a Checker accepting values of the given types and then
// running further (which may be nil). Only objects count as sub-schemas.
func NewChecker(keyword string, types NodeTypes, further FurtherCheck) Checker {
	return &typedChecker{keyword: keyword, types: types, schemas: TypesOf(Object), further: further}
}

func (c *typedChecker) AcceptedTypes() NodeTypes { return c.types }

func (c *typedChecker) CheckSyntax(report *Report, tree Tree) ([]Pointer, error) {
	v, ok := tree.Get(c.keyword)
	if !ok {
		return nil, &FaultError{Op: "check syntax", Pointer: tree.Pointer().String(), Keyword: c.keyword, Err: ErrKeywordAbsent}
	}
	kc := &KeywordContext{
		Keyword:     c.keyword,
		Tree:        tree,
		Value:       v,
		Type:        Classify(v),
		Report:      report,
		SchemaTypes: c.schemas,
	}
	if !c.types.Contains(kc.Type) {
		kc.Error(MsgIncorrectType, "expected", c.types, "found", kc.Type)
		return nil, nil
	}
	if c.further != nil {
		c.further(kc)
	}
	return kc.pointers, nil
}
