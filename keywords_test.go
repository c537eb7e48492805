package schemacheck_test

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/reoring/schemacheck"
	"github.com/reoring/schemacheck/i18n"
)

type keywordCase struct {
	name     string
	draft    sc.Draft
	keyword  string
	schema   string
	errors   []sc.MessageID
	fields   []map[string]any // checked per error, only the listed fields
	pointers []string
}

func (c keywordCase) run(t *testing.T) {
	draft := c.draft
	if draft == "" {
		draft = sc.Draft4
	}
	schema, ok := mustJSON(t, c.schema).(map[string]any)
	require.True(t, ok)
	r, ps := runKeyword(t, draft, c.keyword, schema)

	errs := r.Errors()
	if len(c.errors) == 0 {
		assert.Empty(t, errs)
		assert.True(t, r.IsSuccess())
	} else {
		require.Equal(t, c.errors, messageIDs(errs))
	}
	for i, want := range c.fields {
		require.Less(t, i, len(errs))
		assert.Equal(t, c.keyword, errs[i].Keyword)
		for k, v := range want {
			assert.Equal(t, v, errs[i].Fields[k], "field %q of message %d", k, i)
		}
	}
	if len(c.pointers) == 0 {
		assert.Empty(t, ps)
	} else {
		assert.Equal(t, pointers(c.pointers...), ps)
	}
}

func runCases(t *testing.T, cases []keywordCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, c.run)
	}
}

func TestPatternProperties(t *testing.T) {
	runCases(t, []keywordCase{
		{
			name:     "invalid regex key is reported and not descended",
			keyword:  "patternProperties",
			schema:   `{"patternProperties": {"^a": {}, "b(": {}}}`,
			errors:   []sc.MessageID{sc.MsgInvalidRegex},
			fields:   []map[string]any{{"field": "b(", "message": "regex is invalid"}},
			pointers: []string{"/patternProperties/^a"},
		},
		{
			name:    "non-object value is not a schema",
			keyword: "patternProperties",
			schema:  `{"patternProperties": {"^a": "not-a-schema"}}`,
			errors:  []sc.MessageID{sc.MsgNotASchema},
			fields:  []map[string]any{{"field": "^a", "found": sc.String, "message": "expected a schema"}},
		},
		{
			name:    "wrong top-level type stops further checks",
			keyword: "patternProperties",
			schema:  `{"patternProperties": []}`,
			errors:  []sc.MessageID{sc.MsgIncorrectType},
			fields:  []map[string]any{{"expected": sc.TypesOf(sc.Object), "found": sc.Array}},
		},
		{
			name:    "invalid key with invalid value",
			keyword: "patternProperties",
			schema:  `{"patternProperties": {"(": 1}}`,
			errors:  []sc.MessageID{sc.MsgInvalidRegex, sc.MsgNotASchema},
		},
		{
			name:    "keys are visited in sorted order",
			keyword: "patternProperties",
			schema:  `{"patternProperties": {"z(": {}, "a(": {}, "m(": {}}}`,
			errors:  []sc.MessageID{sc.MsgInvalidRegex, sc.MsgInvalidRegex, sc.MsgInvalidRegex},
			fields:  []map[string]any{{"field": "a("}, {"field": "m("}, {"field": "z("}},
		},
		{
			name:     "inline flags are not ECMA syntax",
			keyword:  "patternProperties",
			schema:   `{"patternProperties": {"(?i)^a": {}, "^b": {}}}`,
			errors:   []sc.MessageID{sc.MsgInvalidRegex},
			fields:   []map[string]any{{"field": "(?i)^a"}},
			pointers: []string{"/patternProperties/^b"},
		},
		{
			name:     "ECMA-only syntax is accepted",
			keyword:  "patternProperties",
			schema:   `{"patternProperties": {"^(a)\\1$": {}}}`,
			pointers: []string{"/patternProperties/^(a)\\1$"},
		},
		{
			name:     "draft-06 boolean schemas",
			draft:    sc.Draft6,
			keyword:  "patternProperties",
			schema:   `{"patternProperties": {"^a": false}}`,
			pointers: []string{"/patternProperties/^a"},
		},
	})
}

func TestPatternProperties_MessageIsLanguageIndependent(t *testing.T) {
	schema := map[string]any{
		"patternProperties": map[string]any{"(": map[string]any{}, "^a": "not-a-schema"},
	}
	r, _ := runKeyword(t, sc.Draft4, "patternProperties", schema)
	require.Len(t, r.Errors(), 2)
	assert.Contains(t, r.Errors()[1].Text, "expected a schema")

	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })
	r, _ = runKeyword(t, sc.Draft4, "patternProperties", schema)
	errs := r.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "regex is invalid", errs[0].Fields["message"])
	assert.Equal(t, "expected a schema", errs[1].Fields["message"])
	assert.NotContains(t, errs[1].Text, "expected a schema")
}

func TestPatternProperties_NestedPointer(t *testing.T) {
	doc := map[string]any{
		"properties": map[string]any{
			"a": map[string]any{"patternProperties": map[string]any{"^x": map[string]any{}}},
		},
	}
	sub, err := sc.NewTree(doc).Navigate(sc.MustParsePointer("/properties/a"))
	require.NoError(t, err)
	dict, _ := sc.DictionaryFor(sc.Draft4)
	c, _ := dict.Get("patternProperties")
	r := sc.NewReport()
	ps, err := c.CheckSyntax(r, sub)
	require.NoError(t, err)
	assert.Equal(t, []string{"/properties/a/patternProperties/^x"}, pointerStrings(ps))
}

func TestSchemaContainers(t *testing.T) {
	runCases(t, []keywordCase{
		{
			name:     "properties",
			keyword:  "properties",
			schema:   `{"properties": {"b": 1, "a": {}, "x/y": {}}}`,
			errors:   []sc.MessageID{sc.MsgNotASchema},
			fields:   []map[string]any{{"field": "b", "found": sc.Integer}},
			pointers: []string{"/properties/a", "/properties/x~1y"},
		},
		{
			name:    "draft-04 boolean property is not a schema",
			keyword: "properties",
			schema:  `{"properties": {"a": true}}`,
			errors:  []sc.MessageID{sc.MsgNotASchema},
			fields:  []map[string]any{{"found": sc.Boolean}},
		},
		{
			name:     "draft-06 boolean property is a schema",
			draft:    sc.Draft6,
			keyword:  "properties",
			schema:   `{"properties": {"a": true}}`,
			pointers: []string{"/properties/a"},
		},
		{
			name:     "definitions",
			keyword:  "definitions",
			schema:   `{"definitions": {"x": {}, "y": {}}}`,
			pointers: []string{"/definitions/x", "/definitions/y"},
		},
		{
			name:     "items object",
			keyword:  "items",
			schema:   `{"items": {}}`,
			pointers: []string{"/items"},
		},
		{
			name:     "items array",
			keyword:  "items",
			schema:   `{"items": [{}, 1, {}]}`,
			errors:   []sc.MessageID{sc.MsgNotASchema},
			fields:   []map[string]any{{"index": 1, "found": sc.Integer}},
			pointers: []string{"/items/0", "/items/2"},
		},
		{
			name:    "draft-04 items boolean",
			keyword: "items",
			schema:  `{"items": false}`,
			errors:  []sc.MessageID{sc.MsgIncorrectType},
		},
		{
			name:     "draft-06 items boolean",
			draft:    sc.Draft6,
			keyword:  "items",
			schema:   `{"items": false}`,
			pointers: []string{"/items"},
		},
		{
			name:    "additionalProperties boolean",
			keyword: "additionalProperties",
			schema:  `{"additionalProperties": false}`,
		},
		{
			name:     "additionalProperties schema",
			keyword:  "additionalProperties",
			schema:   `{"additionalProperties": {}}`,
			pointers: []string{"/additionalProperties"},
		},
		{
			name:     "additionalItems schema",
			keyword:  "additionalItems",
			schema:   `{"additionalItems": {"type": "string"}}`,
			pointers: []string{"/additionalItems"},
		},
		{
			name:    "allOf empty",
			keyword: "allOf",
			schema:  `{"allOf": []}`,
			errors:  []sc.MessageID{sc.MsgEmptyArray},
		},
		{
			name:     "allOf",
			keyword:  "allOf",
			schema:   `{"allOf": [{}, {}]}`,
			pointers: []string{"/allOf/0", "/allOf/1"},
		},
		{
			name:    "anyOf element not a schema",
			keyword: "anyOf",
			schema:  `{"anyOf": [1]}`,
			errors:  []sc.MessageID{sc.MsgNotASchema},
			fields:  []map[string]any{{"index": 0, "found": sc.Integer}},
		},
		{
			name:     "not",
			keyword:  "not",
			schema:   `{"not": {}}`,
			pointers: []string{"/not"},
		},
		{
			name:    "draft-04 not boolean",
			keyword: "not",
			schema:  `{"not": true}`,
			errors:  []sc.MessageID{sc.MsgIncorrectType},
		},
		{
			name:     "draft-06 not boolean",
			draft:    sc.Draft6,
			keyword:  "not",
			schema:   `{"not": true}`,
			pointers: []string{"/not"},
		},
		{
			name:     "draft-03 extends array",
			draft:    sc.Draft3,
			keyword:  "extends",
			schema:   `{"extends": [{}, {}]}`,
			pointers: []string{"/extends/0", "/extends/1"},
		},
		{
			name:     "draft-03 extends object",
			draft:    sc.Draft3,
			keyword:  "extends",
			schema:   `{"extends": {}}`,
			pointers: []string{"/extends"},
		},
		{
			name:     "draft-06 contains",
			draft:    sc.Draft6,
			keyword:  "contains",
			schema:   `{"contains": {}}`,
			pointers: []string{"/contains"},
		},
		{
			name:     "draft-06 propertyNames",
			draft:    sc.Draft6,
			keyword:  "propertyNames",
			schema:   `{"propertyNames": {"pattern": "^a"}}`,
			pointers: []string{"/propertyNames"},
		},
	})
}

func TestNumericKeywords(t *testing.T) {
	runCases(t, []keywordCase{
		{
			name:    "negative minItems",
			keyword: "minItems",
			schema:  `{"minItems": -1}`,
			errors:  []sc.MessageID{sc.MsgNegativeInteger},
			fields:  []map[string]any{{"found": json.Number("-1")}},
		},
		{
			name:    "fractional minItems",
			keyword: "minItems",
			schema:  `{"minItems": 1.5}`,
			errors:  []sc.MessageID{sc.MsgIncorrectType},
			fields:  []map[string]any{{"expected": sc.TypesOf(sc.Integer), "found": sc.Number}},
		},
		{name: "zero maxLength", keyword: "maxLength", schema: `{"maxLength": 0}`},
		{name: "integer maximum satisfies number", keyword: "maximum", schema: `{"maximum": 1}`},
		{name: "decimal minimum", keyword: "minimum", schema: `{"minimum": -0.5}`},
		{
			name:    "zero multipleOf",
			keyword: "multipleOf",
			schema:  `{"multipleOf": 0}`,
			errors:  []sc.MessageID{sc.MsgNotPositive},
		},
		{name: "decimal multipleOf", keyword: "multipleOf", schema: `{"multipleOf": 0.01}`},
		{
			name:    "draft-03 negative divisibleBy",
			draft:   sc.Draft3,
			keyword: "divisibleBy",
			schema:  `{"divisibleBy": -2}`,
			errors:  []sc.MessageID{sc.MsgNotPositive},
		},
		{
			name:    "exclusiveMinimum without minimum",
			keyword: "exclusiveMinimum",
			schema:  `{"exclusiveMinimum": true}`,
			errors:  []sc.MessageID{sc.MsgExclusiveWithoutBase},
			fields:  []map[string]any{{"base": "minimum"}},
		},
		{
			name:    "exclusiveMaximum with maximum",
			keyword: "exclusiveMaximum",
			schema:  `{"exclusiveMaximum": true, "maximum": 3}`,
		},
		{
			name:    "draft-06 numeric exclusiveMinimum",
			draft:   sc.Draft6,
			keyword: "exclusiveMinimum",
			schema:  `{"exclusiveMinimum": 3}`,
		},
		{
			name:    "draft-06 boolean exclusiveMinimum",
			draft:   sc.Draft6,
			keyword: "exclusiveMinimum",
			schema:  `{"exclusiveMinimum": true}`,
			errors:  []sc.MessageID{sc.MsgIncorrectType},
		},
	})
}

func TestStringKeywords(t *testing.T) {
	runCases(t, []keywordCase{
		{
			name:    "invalid pattern",
			keyword: "pattern",
			schema:  `{"pattern": "("}`,
			errors:  []sc.MessageID{sc.MsgInvalidRegex},
			fields:  []map[string]any{{"value": "("}},
		},
		{name: "lookahead pattern", keyword: "pattern", schema: `{"pattern": "^(?=a)"}`},
		{
			name:    "atomic group pattern",
			keyword: "pattern",
			schema:  `{"pattern": "(?>a)"}`,
			errors:  []sc.MessageID{sc.MsgInvalidRegex},
			fields:  []map[string]any{{"value": "(?>a)"}},
		},
		{
			name:    "invalid $ref",
			keyword: "$ref",
			schema:  `{"$ref": "http://[::1"}`,
			errors:  []sc.MessageID{sc.MsgInvalidURI},
		},
		{name: "fragment $ref", keyword: "$ref", schema: `{"$ref": "#/definitions/a"}`},
		{name: "draft-06 $id", draft: sc.Draft6, keyword: "$id", schema: `{"$id": "http://example.com/s.json"}`},
		{
			name:    "numeric title",
			keyword: "title",
			schema:  `{"title": 1}`,
			errors:  []sc.MessageID{sc.MsgIncorrectType},
		},
	})
}

func TestArrayKeywords(t *testing.T) {
	runCases(t, []keywordCase{
		{name: "draft-04 empty enum", keyword: "enum", schema: `{"enum": []}`, errors: []sc.MessageID{sc.MsgEmptyArray}},
		{name: "draft-03 empty enum", draft: sc.Draft3, keyword: "enum", schema: `{"enum": []}`},
		{
			name:    "enum numbers compare by value",
			keyword: "enum",
			schema:  `{"enum": [1, 1.0]}`,
			errors:  []sc.MessageID{sc.MsgElementsNotUnique},
		},
		{
			name:    "enum nested duplicates",
			keyword: "enum",
			schema:  `{"enum": [{"a": [1]}, {"a": [1.0]}]}`,
			errors:  []sc.MessageID{sc.MsgElementsNotUnique},
		},
		{name: "enum mixed kinds", keyword: "enum", schema: `{"enum": [1, "1", null, true, [1], {"a": 1}]}`},
		{name: "draft-04 empty required", keyword: "required", schema: `{"required": []}`, errors: []sc.MessageID{sc.MsgEmptyArray}},
		{name: "draft-06 empty required", draft: sc.Draft6, keyword: "required", schema: `{"required": []}`},
		{
			name:    "required duplicates",
			keyword: "required",
			schema:  `{"required": ["a", "a"]}`,
			errors:  []sc.MessageID{sc.MsgElementsNotUnique},
		},
		{
			name:    "required non-string element",
			keyword: "required",
			schema:  `{"required": ["a", 1]}`,
			errors:  []sc.MessageID{sc.MsgIncorrectElementType},
			fields:  []map[string]any{{"index": 1, "expected": sc.TypesOf(sc.String), "found": sc.Integer}},
		},
		{name: "draft-03 boolean required", draft: sc.Draft3, keyword: "required", schema: `{"required": true}`},
		{
			name:    "draft-03 array required",
			draft:   sc.Draft3,
			keyword: "required",
			schema:  `{"required": []}`,
			errors:  []sc.MessageID{sc.MsgIncorrectType},
		},
	})
}

func TestTypeKeyword(t *testing.T) {
	runCases(t, []keywordCase{
		{
			name:    "unknown name",
			keyword: "type",
			schema:  `{"type": "foo"}`,
			errors:  []sc.MessageID{sc.MsgUnknownSimpleType},
			fields:  []map[string]any{{"found": "foo"}},
		},
		{name: "draft-04 any", keyword: "type", schema: `{"type": "any"}`, errors: []sc.MessageID{sc.MsgUnknownSimpleType}},
		{name: "draft-03 any", draft: sc.Draft3, keyword: "type", schema: `{"type": "any"}`},
		{name: "empty array", keyword: "type", schema: `{"type": []}`, errors: []sc.MessageID{sc.MsgEmptyArray}},
		{
			name:    "duplicates",
			keyword: "type",
			schema:  `{"type": ["string", "string"]}`,
			errors:  []sc.MessageID{sc.MsgElementsNotUnique},
		},
		{
			name:    "non-string element",
			keyword: "type",
			schema:  `{"type": ["string", 1]}`,
			errors:  []sc.MessageID{sc.MsgIncorrectElementType},
			fields:  []map[string]any{{"index": 1, "found": sc.Integer}},
		},
		{name: "valid union", keyword: "type", schema: `{"type": ["string", "null"]}`},
		{
			name:     "draft-03 schema in union",
			draft:    sc.Draft3,
			keyword:  "type",
			schema:   `{"type": ["string", {}]}`,
			pointers: []string{"/type/1"},
		},
		{
			name:    "draft-03 bad element",
			draft:   sc.Draft3,
			keyword: "type",
			schema:  `{"type": ["string", 1]}`,
			errors:  []sc.MessageID{sc.MsgIncorrectElementType},
			fields:  []map[string]any{{"expected": sc.TypesOf(sc.String, sc.Object)}},
		},
		{name: "draft-03 disallow", draft: sc.Draft3, keyword: "disallow", schema: `{"disallow": "null"}`},
	})
}

func TestDependencies(t *testing.T) {
	runCases(t, []keywordCase{
		{
			name:     "draft-04 mixed",
			keyword:  "dependencies",
			schema:   `{"dependencies": {"a": ["b"], "c": {}, "d": 1, "e": []}}`,
			errors:   []sc.MessageID{sc.MsgIncorrectDependency, sc.MsgEmptyArray},
			fields:   []map[string]any{{"property": "d", "found": sc.Integer}, {"property": "e"}},
			pointers: []string{"/dependencies/c"},
		},
		{
			name:    "draft-04 string dependency",
			keyword: "dependencies",
			schema:  `{"dependencies": {"a": "b"}}`,
			errors:  []sc.MessageID{sc.MsgIncorrectDependency},
			fields:  []map[string]any{{"found": sc.String}},
		},
		{
			name:    "draft-04 duplicate names",
			keyword: "dependencies",
			schema:  `{"dependencies": {"a": ["b", "b"]}}`,
			errors:  []sc.MessageID{sc.MsgElementsNotUnique},
			fields:  []map[string]any{{"property": "a"}},
		},
		{
			name:    "draft-04 non-string name",
			keyword: "dependencies",
			schema:  `{"dependencies": {"a": [1]}}`,
			errors:  []sc.MessageID{sc.MsgIncorrectDependency},
			fields:  []map[string]any{{"expected": sc.TypesOf(sc.String), "found": sc.Integer}},
		},
		{
			name:     "draft-03 string and schema",
			draft:    sc.Draft3,
			keyword:  "dependencies",
			schema:   `{"dependencies": {"a": "b", "c": ["d"], "e": {}}}`,
			pointers: []string{"/dependencies/e"},
		},
		{
			name:     "draft-06 empty array and boolean schema",
			draft:    sc.Draft6,
			keyword:  "dependencies",
			schema:   `{"dependencies": {"a": [], "b": true}}`,
			pointers: []string{"/dependencies/b"},
		},
	})
}

// Every keyword of every draft rejects every value type it does not accept,
// with exactly one incorrect_type message and no pointers.
func TestInvalidTypesAreReported(t *testing.T) {
	for _, d := range sc.Drafts() {
		dict, err := sc.DictionaryFor(d)
		require.NoError(t, err)
		for _, kw := range dict.Keywords() {
			c, _ := dict.Get(kw)
			tr, ok := c.(sc.TypeRestricted)
			require.True(t, ok, "%s/%s", d, kw)
			accepted := tr.AcceptedTypes()
			for _, nt := range sc.AllNodeTypes {
				if accepted.Contains(nt) {
					continue
				}
				t.Run(string(d)+"/"+kw+"/"+nt.String(), func(t *testing.T) {
					r := sc.NewReport()
					ps, err := c.CheckSyntax(r, sc.NewTree(map[string]any{kw: sampleValues[nt]}))
					require.NoError(t, err)
					assert.Empty(t, ps)
					ms := r.Messages()
					require.Len(t, ms, 1)
					assert.Equal(t, sc.MsgIncorrectType, ms[0].ID)
					assert.Equal(t, sc.LevelError, ms[0].Level)
					assert.Equal(t, kw, ms[0].Keyword)
					assert.Equal(t, accepted, ms[0].Fields["expected"])
					assert.Equal(t, nt, ms[0].Fields["found"])
				})
			}
		}
	}
}

func TestChecker_KeywordAbsentIsAFault(t *testing.T) {
	dict, _ := sc.DictionaryFor(sc.Draft4)
	c, _ := dict.Get("patternProperties")
	r := sc.NewReport()
	_, err := c.CheckSyntax(r, sc.NewTree(map[string]any{"type": "object"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sc.ErrKeywordAbsent))
	assert.Zero(t, r.Len())
}

func TestNewChecker_Custom(t *testing.T) {
	var seen any
	c := sc.NewChecker("x-order", sc.TypesOf(sc.Integer), func(kc *sc.KeywordContext) {
		seen = kc.Value
		kc.Warn(sc.MsgNegativeInteger, "found", kc.Value)
		kc.Descend("sub")
	})
	r := sc.NewReport()
	ps, err := c.CheckSyntax(r, sc.NewTree(map[string]any{"x-order": 2}))
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.True(t, r.IsSuccess())
	assert.Equal(t, []string{"/x-order/sub"}, pointerStrings(ps))
	assert.Equal(t, sc.LevelWarning, r.Messages()[0].Level)
}

func TestCheckerFunc(t *testing.T) {
	var c sc.Checker = sc.CheckerFunc(func(r *sc.Report, tree sc.Tree) ([]sc.Pointer, error) {
		return []sc.Pointer{tree.Pointer().Append("x")}, nil
	})
	ps, err := c.CheckSyntax(sc.NewReport(), sc.NewTree(map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"/x"}, pointerStrings(ps))
}

func TestKeywordContext_MalformedFieldsPanic(t *testing.T) {
	tree := sc.NewTree(map[string]any{"x-f": 1})
	for name, kv := range map[string][]any{
		"odd length":      {"found"},
		"non-string name": {1, "x"},
		"empty name":      {"", "x"},
	} {
		t.Run(name, func(t *testing.T) {
			c := sc.NewChecker("x-f", sc.AnyType, func(kc *sc.KeywordContext) {
				kc.Error(sc.MsgIncorrectType, kv...)
			})
			assert.Panics(t, func() { _, _ = c.CheckSyntax(sc.NewReport(), tree) })
		})
	}
}
