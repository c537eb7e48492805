package schemacheck

import (
	"math"
	"reflect"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// NodeType is the JSON kind of a value as seen by syntax checkers.
type NodeType int

const (
	Array NodeType = iota
	Boolean
	Integer
	Null
	Number
	Object
	String
)

var nodeTypeNames = [...]string{
	Array:   "array",
	Boolean: "boolean",
	Integer: "integer",
	Null:    "null",
	Number:  "number",
	Object:  "object",
	String:  "string",
}

// AllNodeTypes lists every NodeType in name order.
var AllNodeTypes = []NodeType{Array, Boolean, Integer, Null, Number, Object, String}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "unknown"
	}
	return nodeTypeNames[t]
}

// MarshalText renders the lowercase JSON name.
func (t NodeType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// NodeTypeFromName returns the NodeType for a simple type name such as "object".
func NodeTypeFromName(name string) (NodeType, bool) {
	for i, n := range nodeTypeNames {
		if n == name {
			return NodeType(i), true
		}
	}
	return Null, false
}

// numberLiteral matches json.Number from both encoding/json and go-json.
type numberLiteral interface {
	Float64() (float64, error)
	Int64() (int64, error)
	String() string
}

// Classify maps a decoded JSON value to its NodeType. Integer is reported for
// whole-valued literals; see NodeTypes.Contains for how it also satisfies Number.
func Classify(v any) NodeType {
	switch t := v.(type) {
	case nil:
		return Null
	case map[string]any:
		return Object
	case []any:
		return Array
	case bool:
		return Boolean
	case numberLiteral:
		return classifyLiteral(t.String())
	case string:
		return String
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Integer
	case float64:
		return classifyFloat(t)
	case float32:
		return classifyFloat(float64(t))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Object
		}
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		return Classify(rv.Elem().Interface())
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer
	case reflect.Float32, reflect.Float64:
		return classifyFloat(rv.Float())
	}
	return Null
}

func classifyLiteral(s string) NodeType {
	if strings.ContainsAny(s, ".eE") {
		return Number
	}
	return Integer
}

func classifyFloat(f float64) NodeType {
	if math.IsInf(f, 0) || math.IsNaN(f) || math.Trunc(f) != f {
		return Number
	}
	return Integer
}

// NodeTypes is a set of NodeType values.
type NodeTypes uint8

// TypesOf builds a NodeTypes set.
func TypesOf(types ...NodeType) NodeTypes {
	var s NodeTypes
	for _, t := range types {
		s |= 1 << uint(t)
	}
	return s
}

// AnyType accepts every value.
var AnyType = TypesOf(AllNodeTypes...)

// Has reports strict membership.
func (s NodeTypes) Has(t NodeType) bool { return s&(1<<uint(t)) != 0 }

// Contains reports whether a value of type t is acceptable. An Integer is
// acceptable wherever Number is.
func (s NodeTypes) Contains(t NodeType) bool {
	if s.Has(t) {
		return true
	}
	return t == Integer && s.Has(Number)
}

// Complement returns every type not in s.
func (s NodeTypes) Complement() NodeTypes { return AnyType &^ s }

// Types lists the members in name order.
func (s NodeTypes) Types() []NodeType {
	out := make([]NodeType, 0, len(AllNodeTypes))
	for _, t := range AllNodeTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Names lists the member names, sorted.
func (s NodeTypes) Names() []string {
	ts := s.Types()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	sort.Strings(out)
	return out
}

func (s NodeTypes) String() string { return "[" + strings.Join(s.Names(), ", ") + "]" }

// MarshalJSON renders the set as an array of names.
func (s NodeTypes) MarshalJSON() ([]byte, error) { return json.Marshal(s.Names()) }
