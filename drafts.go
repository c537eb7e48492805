package schemacheck

import (
	"fmt"
	"strings"
	"sync"
)

// Draft names a version of the JSON Schema format.
type Draft string

const (
	Draft3 Draft = "draft-03"
	Draft4 Draft = "draft-04"
	Draft6 Draft = "draft-06"
)

// DefaultDraft is used when neither an option nor $schema selects one.
const DefaultDraft = Draft4

// Drafts lists the supported drafts, oldest first.
func Drafts() []Draft { return []Draft{Draft3, Draft4, Draft6} }

// ParseDraft accepts "draft-04", "draft4", "v4" and "4" style names.
func ParseDraft(s string) (Draft, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.TrimPrefix(n, "draft")
	n = strings.TrimPrefix(n, "-")
	n = strings.TrimPrefix(n, "v")
	n = strings.TrimPrefix(n, "0")
	switch n {
	case "3":
		return Draft3, nil
	case "4":
		return Draft4, nil
	case "6":
		return Draft6, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDraft, s)
}

// DraftFromURI maps a $schema value to a Draft.
func DraftFromURI(uri string) (Draft, bool) {
	u := strings.TrimSuffix(strings.TrimSpace(uri), "#")
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	switch u {
	case "json-schema.org/draft-03/schema":
		return Draft3, true
	case "json-schema.org/draft-04/schema":
		return Draft4, true
	case "json-schema.org/draft-06/schema":
		return Draft6, true
	}
	return "", false
}

var dictionaries = map[Draft]func() *Dictionary{
	Draft3: sync.OnceValue(buildDraft3),
	Draft4: sync.OnceValue(buildDraft4),
	Draft6: sync.OnceValue(buildDraft6),
}

// DictionaryFor returns the shared dictionary of a draft. Each dictionary is
// built on first use and never modified afterwards.
func DictionaryFor(d Draft) (*Dictionary, error) {
	build, ok := dictionaries[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDraft, string(d))
	}
	return build(), nil
}

// addCommon registers the keywords whose syntax is the same in every draft.
func addCommon(b *DictionaryBuilder, r rules) {
	b.Add("$schema", r.uriReference("$schema"))
	b.Add("$ref", r.uriReference("$ref"))
	b.Add("title", r.typeOnly("title", String))
	b.Add("description", r.typeOnly("description", String))
	b.Add("format", r.typeOnly("format", String))
	b.Add("default", r.typeOnly("default", AllNodeTypes...))

	b.Add("additionalItems", r.schemaOrBoolean("additionalItems"))
	b.Add("additionalProperties", r.schemaOrBoolean("additionalProperties"))
	b.Add("items", r.schemaOrSchemaArray("items"))
	b.Add("properties", r.schemaMap("properties", false))
	b.Add("patternProperties", r.schemaMap("patternProperties", true))

	b.Add("maxItems", r.nonNegativeInteger("maxItems"))
	b.Add("minItems", r.nonNegativeInteger("minItems"))
	b.Add("maxLength", r.nonNegativeInteger("maxLength"))
	b.Add("minLength", r.nonNegativeInteger("minLength"))
	b.Add("uniqueItems", r.typeOnly("uniqueItems", Boolean))
	b.Add("maximum", r.typeOnly("maximum", Number))
	b.Add("minimum", r.typeOnly("minimum", Number))
	b.Add("pattern", r.pattern("pattern"))
}

func buildDraft3() *Dictionary {
	r := rules{schemas: TypesOf(Object)}
	b := NewDictionaryBuilder(Draft3)
	addCommon(b, r)
	b.Add("id", r.uriReference("id"))
	b.Add("exclusiveMaximum", r.exclusiveBoolean("exclusiveMaximum", "maximum"))
	b.Add("exclusiveMinimum", r.exclusiveBoolean("exclusiveMinimum", "minimum"))
	b.Add("enum", r.enum("enum", false))
	b.Add("dependencies", r.dependencies("dependencies", dependencyForm{allowString: true}))
	b.Add("type", r.typeV3("type"))
	b.Add("disallow", r.typeV3("disallow"))
	b.Add("extends", r.schemaOrSchemaArray("extends"))
	b.Add("divisibleBy", r.positiveNumber("divisibleBy"))
	b.Add("required", r.typeOnly("required", Boolean))
	return b.Freeze()
}

// addDraft4Family registers what draft-04 introduced and later drafts kept.
func addDraft4Family(b *DictionaryBuilder, r rules) {
	b.Add("multipleOf", r.positiveNumber("multipleOf"))
	b.Add("maxProperties", r.nonNegativeInteger("maxProperties"))
	b.Add("minProperties", r.nonNegativeInteger("minProperties"))
	b.Add("definitions", r.schemaMap("definitions", false))
	b.Add("allOf", r.schemaArray("allOf", true))
	b.Add("anyOf", r.schemaArray("anyOf", true))
	b.Add("oneOf", r.schemaArray("oneOf", true))
	b.Add("not", r.singleSchema("not"))
	b.Add("type", r.typeV4("type"))
}

func buildDraft4() *Dictionary {
	r := rules{schemas: TypesOf(Object)}
	b := NewDictionaryBuilder(Draft4)
	addCommon(b, r)
	addDraft4Family(b, r)
	b.Add("id", r.uriReference("id"))
	b.Add("exclusiveMaximum", r.exclusiveBoolean("exclusiveMaximum", "maximum"))
	b.Add("exclusiveMinimum", r.exclusiveBoolean("exclusiveMinimum", "minimum"))
	b.Add("enum", r.enum("enum", true))
	b.Add("required", r.stringArray("required", true))
	b.Add("dependencies", r.dependencies("dependencies", dependencyForm{nonEmptyArrays: true}))
	return b.Freeze()
}

func buildDraft6() *Dictionary {
	r := rules{schemas: TypesOf(Object, Boolean)}
	b := NewDictionaryBuilder(Draft6).AllowBooleanSchemas(true)
	addCommon(b, r)
	addDraft4Family(b, r)
	b.Add("$id", r.uriReference("$id"))
	b.Add("exclusiveMaximum", r.typeOnly("exclusiveMaximum", Number))
	b.Add("exclusiveMinimum", r.typeOnly("exclusiveMinimum", Number))
	b.Add("enum", r.enum("enum", false))
	b.Add("required", r.stringArray("required", false))
	b.Add("dependencies", r.dependencies("dependencies", dependencyForm{}))
	b.Add("const", r.typeOnly("const", AllNodeTypes...))
	b.Add("examples", r.typeOnly("examples", Array))
	b.Add("contains", r.singleSchema("contains"))
	b.Add("propertyNames", r.singleSchema("propertyNames"))
	return b.Freeze()
}
