package schemacheck

import (
	"fmt"
	"math/big"
	"net/url"
	"sort"

	"github.com/reoring/schemacheck/internal/ecma"
)

// rules builds the built-in checkers for one draft. schemas lists the value
// types that count as a schema there (draft-06 adds booleans).
type rules struct {
	schemas NodeTypes
}

func (r rules) checker(kw string, types NodeTypes, further FurtherCheck) Checker {
	return &typedChecker{keyword: kw, types: types, schemas: r.schemas, further: further}
}

// typeOnly enforces the value type and nothing else.
func (r rules) typeOnly(kw string, types ...NodeType) Checker {
	return r.checker(kw, TypesOf(types...), nil)
}

// schemaOrBoolean covers additionalItems and additionalProperties.
func (r rules) schemaOrBoolean(kw string) Checker {
	return r.checker(kw, TypesOf(Boolean, Object), func(kc *KeywordContext) {
		if kc.IsSchema(kc.Value) {
			kc.Descend()
		}
	})
}

// singleSchema covers not, contains and propertyNames.
func (r rules) singleSchema(kw string) Checker {
	return r.checker(kw, r.schemas, func(kc *KeywordContext) {
		kc.Descend()
	})
}

// schemaArray covers allOf, anyOf and oneOf.
func (r rules) schemaArray(kw string, nonEmpty bool) Checker {
	return r.checker(kw, TypesOf(Array), func(kc *KeywordContext) {
		checkSchemaElements(kc, kc.Value.([]any), nonEmpty)
	})
}

// schemaOrSchemaArray covers items and extends.
func (r rules) schemaOrSchemaArray(kw string) Checker {
	return r.checker(kw, r.schemas|TypesOf(Array), func(kc *KeywordContext) {
		if kc.Type == Array {
			checkSchemaElements(kc, kc.Value.([]any), false)
			return
		}
		kc.Descend()
	})
}

func checkSchemaElements(kc *KeywordContext, arr []any, nonEmpty bool) {
	if nonEmpty && len(arr) == 0 {
		kc.Error(MsgEmptyArray)
		return
	}
	for i, el := range arr {
		if !kc.IsSchema(el) {
			kc.Error(MsgNotASchema, "index", i, "found", Classify(el))
			continue
		}
		kc.DescendIndex(i)
	}
}

// Fixed, untranslated texts carried in the "message" field of the
// patternProperties diagnostics.
const (
	invalidRegexText   = "regex is invalid"
	expectedSchemaText = "expected a schema"
)

// schemaMap covers properties, definitions and patternProperties. Members are
// visited in key order so diagnostics come out in a stable order.
func (r rules) schemaMap(kw string, regexKeys bool) Checker {
	return r.checker(kw, TypesOf(Object), func(kc *KeywordContext) {
		m := kc.Value.(map[string]any)
		for _, key := range sortedKeys(m) {
			valid := true
			if regexKeys && !ecma.ValidPattern(key) {
				kc.Error(MsgInvalidRegex, "field", key, "message", invalidRegexText)
				valid = false
			}
			v := m[key]
			if !kc.IsSchema(v) {
				if regexKeys {
					kc.Error(MsgNotASchema, "field", key, "found", Classify(v), "message", expectedSchemaText)
				} else {
					kc.Error(MsgNotASchema, "field", key, "found", Classify(v))
				}
				continue
			}
			if valid {
				kc.Descend(key)
			}
		}
	})
}

func (r rules) nonNegativeInteger(kw string) Checker {
	return r.checker(kw, TypesOf(Integer), func(kc *KeywordContext) {
		if n, ok := numericValue(kc.Value); ok && n.Sign() < 0 {
			kc.Error(MsgNegativeInteger, "found", kc.Value)
		}
	})
}

func (r rules) positiveNumber(kw string) Checker {
	return r.checker(kw, TypesOf(Number), func(kc *KeywordContext) {
		if n, ok := numericValue(kc.Value); ok && n.Sign() <= 0 {
			kc.Error(MsgNotPositive, "found", kc.Value)
		}
	})
}

// exclusiveBoolean is the draft-03/04 exclusiveMinimum/exclusiveMaximum,
// which only makes sense next to its base keyword.
func (r rules) exclusiveBoolean(kw, base string) Checker {
	return r.checker(kw, TypesOf(Boolean), func(kc *KeywordContext) {
		if !kc.Tree.Has(base) {
			kc.Error(MsgExclusiveWithoutBase, "base", base)
		}
	})
}

func (r rules) pattern(kw string) Checker {
	return r.checker(kw, TypesOf(String), func(kc *KeywordContext) {
		if s := kc.Value.(string); !ecma.ValidPattern(s) {
			kc.Error(MsgInvalidRegex, "value", s)
		}
	})
}

func (r rules) uriReference(kw string) Checker {
	return r.checker(kw, TypesOf(String), func(kc *KeywordContext) {
		s := kc.Value.(string)
		if _, err := url.Parse(s); err != nil {
			kc.Error(MsgInvalidURI, "value", s)
		}
	})
}

func (r rules) enum(kw string, nonEmpty bool) Checker {
	return r.checker(kw, TypesOf(Array), func(kc *KeywordContext) {
		arr := kc.Value.([]any)
		if nonEmpty && len(arr) == 0 {
			kc.Error(MsgEmptyArray)
			return
		}
		if !uniqueValues(arr) {
			kc.Error(MsgElementsNotUnique)
		}
	})
}

// stringArray covers the draft-04+ required keyword.
func (r rules) stringArray(kw string, nonEmpty bool) Checker {
	return r.checker(kw, TypesOf(Array), func(kc *KeywordContext) {
		arr := kc.Value.([]any)
		if nonEmpty && len(arr) == 0 {
			kc.Error(MsgEmptyArray)
			return
		}
		if checkStringElements(kc, arr) && !uniqueValues(arr) {
			kc.Error(MsgElementsNotUnique)
		}
	})
}

func checkStringElements(kc *KeywordContext, arr []any) bool {
	ok := true
	for i, el := range arr {
		if t := Classify(el); t != String {
			kc.Error(MsgIncorrectElementType, "index", i, "expected", TypesOf(String), "found", t)
			ok = false
		}
	}
	return ok
}

var (
	simpleTypesV3 = []string{"any", "array", "boolean", "integer", "null", "number", "object", "string"}
	simpleTypesV4 = []string{"array", "boolean", "integer", "null", "number", "object", "string"}
)

func isSimpleType(valid []string, s string) bool {
	i := sort.SearchStrings(valid, s)
	return i < len(valid) && valid[i] == s
}

// typeV3 covers draft-03 type and disallow: a simple type name, or an array
// mixing names and schemas.
func (r rules) typeV3(kw string) Checker {
	return r.checker(kw, TypesOf(String, Array), func(kc *KeywordContext) {
		if kc.Type == String {
			if s := kc.Value.(string); !isSimpleType(simpleTypesV3, s) {
				kc.Error(MsgUnknownSimpleType, "found", s, "valid", simpleTypesV3)
			}
			return
		}
		arr := kc.Value.([]any)
		if !uniqueValues(arr) {
			kc.Error(MsgElementsNotUnique)
			return
		}
		for i, el := range arr {
			switch Classify(el) {
			case String:
				if s := el.(string); !isSimpleType(simpleTypesV3, s) {
					kc.Error(MsgUnknownSimpleType, "found", s, "valid", simpleTypesV3)
				}
			case Object:
				kc.DescendIndex(i)
			default:
				kc.Error(MsgIncorrectElementType, "index", i, "expected", TypesOf(String, Object), "found", Classify(el))
			}
		}
	})
}

// typeV4 covers draft-04+ type: a simple type name or a non-empty array of
// unique names.
func (r rules) typeV4(kw string) Checker {
	return r.checker(kw, TypesOf(String, Array), func(kc *KeywordContext) {
		if kc.Type == String {
			if s := kc.Value.(string); !isSimpleType(simpleTypesV4, s) {
				kc.Error(MsgUnknownSimpleType, "found", s, "valid", simpleTypesV4)
			}
			return
		}
		arr := kc.Value.([]any)
		if len(arr) == 0 {
			kc.Error(MsgEmptyArray)
			return
		}
		if !checkStringElements(kc, arr) {
			return
		}
		if !uniqueValues(arr) {
			kc.Error(MsgElementsNotUnique)
			return
		}
		for _, el := range arr {
			if s := el.(string); !isSimpleType(simpleTypesV4, s) {
				kc.Error(MsgUnknownSimpleType, "found", s, "valid", simpleTypesV4)
			}
		}
	})
}

// dependencyForm tells which property-dependency shapes a draft accepts.
type dependencyForm struct {
	allowString    bool // draft-03: a single property name
	nonEmptyArrays bool // draft-04
}

func (r rules) dependencies(kw string, form dependencyForm) Checker {
	expected := TypesOf(Array) | r.schemas
	if form.allowString {
		expected |= TypesOf(String)
	}
	return r.checker(kw, TypesOf(Object), func(kc *KeywordContext) {
		m := kc.Value.(map[string]any)
		for _, prop := range sortedKeys(m) {
			v := m[prop]
			t := Classify(v)
			switch {
			case kc.IsSchema(v):
				kc.Descend(prop)
			case t == String && form.allowString:
			case t == Array:
				checkPropertyDependency(kc, prop, v.([]any), form.nonEmptyArrays)
			default:
				kc.Error(MsgIncorrectDependency, "property", prop, "expected", expected, "found", t)
			}
		}
	})
}

func checkPropertyDependency(kc *KeywordContext, prop string, arr []any, nonEmpty bool) {
	if nonEmpty && len(arr) == 0 {
		kc.Error(MsgEmptyArray, "property", prop)
		return
	}
	for _, el := range arr {
		if t := Classify(el); t != String {
			kc.Error(MsgIncorrectDependency, "property", prop, "expected", TypesOf(String), "found", t)
			return
		}
	}
	if !uniqueValues(arr) {
		kc.Error(MsgElementsNotUnique, "property", prop)
	}
}

// numericValue returns v as an exact rational.
func numericValue(v any) (*big.Rat, bool) {
	var s string
	switch t := v.(type) {
	case numberLiteral:
		s = t.String()
	case float64:
		n := new(big.Rat).SetFloat64(t)
		return n, n != nil
	case float32:
		return numericValue(float64(t))
	default:
		if c := Classify(v); c != Integer && c != Number {
			return nil, false
		}
		s = fmt.Sprint(v)
	}
	n, ok := new(big.Rat).SetString(s)
	return n, ok
}

// jsonEqual compares two decoded values the way JSON Schema does: numbers by
// value (1 equals 1.0), containers structurally.
func jsonEqual(a, b any) bool {
	ta, tb := Classify(a), Classify(b)
	na, nb := ta == Integer || ta == Number, tb == Integer || tb == Number
	if na || nb {
		if !na || !nb {
			return false
		}
		x, okx := numericValue(a)
		y, oky := numericValue(b)
		return okx && oky && x.Cmp(y) == 0
	}
	if ta != tb {
		return false
	}
	switch ta {
	case Object:
		ma, mb := asObject(a), asObject(b)
		if len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !jsonEqual(va, vb) {
				return false
			}
		}
		return true
	case Array:
		xa, xb := asArray(a), asArray(b)
		if len(xa) != len(xb) {
			return false
		}
		for i := range xa {
			if !jsonEqual(xa[i], xb[i]) {
				return false
			}
		}
		return true
	case Null:
		return true
	default:
		return a == b
	}
}

func uniqueValues(arr []any) bool {
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if jsonEqual(arr[i], arr[j]) {
				return false
			}
		}
	}
	return true
}
