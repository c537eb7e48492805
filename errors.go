package schemacheck

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MessageID identifies a kind of diagnostic. The set is fixed; see MessageIDs.
type MessageID string

// Message IDs (exported consts so tests can assert on kinds, not text).
const (
	MsgIncorrectType        MessageID = "incorrect_type"
	MsgInvalidRegex         MessageID = "invalid_regex"
	MsgNotASchema           MessageID = "not_a_schema"
	MsgEmptyArray           MessageID = "empty_array"
	MsgElementsNotUnique    MessageID = "elements_not_unique"
	MsgIncorrectElementType MessageID = "incorrect_element_type"
	MsgNegativeInteger      MessageID = "negative_integer"
	MsgNotPositive          MessageID = "not_positive"
	MsgExclusiveWithoutBase MessageID = "exclusive_without_base"
	MsgInvalidURI           MessageID = "invalid_uri"
	MsgIncorrectDependency  MessageID = "incorrect_dependency"
	MsgUnknownSimpleType    MessageID = "unknown_simple_type"
	MsgUnknownKeywords      MessageID = "unknown_keywords"
	MsgInvalidRoot          MessageID = "invalid_root"
)

// messageFields records the structured fields each message kind carries.
// Entries separated by "|" are alternatives; a trailing "?" marks a field
// only some keywords set.
var messageFields = map[MessageID][]string{
	MsgIncorrectType:        {"expected", "found"},
	MsgInvalidRegex:         {"field|value", "message?"},
	MsgNotASchema:           {"field|index", "found", "message?"},
	MsgEmptyArray:           nil,
	MsgElementsNotUnique:    nil,
	MsgIncorrectElementType: {"index", "expected", "found"},
	MsgNegativeInteger:      {"found"},
	MsgNotPositive:          {"found"},
	MsgExclusiveWithoutBase: {"base"},
	MsgInvalidURI:           {"value"},
	MsgIncorrectDependency:  {"property", "expected", "found"},
	MsgUnknownSimpleType:    {"found", "valid"},
	MsgUnknownKeywords:      {"ignored"},
	MsgInvalidRoot:          {"expected", "found"},
}

// MessageIDs enumerates the catalog in sorted order.
func MessageIDs() []MessageID {
	out := make([]MessageID, 0, len(messageFields))
	for id := range messageFields {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ExpectedFields lists the structured fields a message of this kind carries.
func (id MessageID) ExpectedFields() []string {
	return append([]string(nil), messageFields[id]...)
}

// Known reports whether id belongs to the catalog.
func (id MessageID) Known() bool {
	_, ok := messageFields[id]
	return ok
}

// Message is a single structured diagnostic.
type Message struct {
	Level   Level          `json:"level"`
	Keyword string         `json:"keyword,omitempty"`
	ID      MessageID      `json:"messageId"`
	Pointer string         `json:"pointer"` // JSON Pointer of the schema node.
	Fields  map[string]any `json:"fields,omitempty"`
	Text    string         `json:"message"`
}

// Field returns a structured field value.
func (m Message) Field(name string) (any, bool) {
	v, ok := m.Fields[name]
	return v, ok
}

// Messages is a list of diagnostics that implements error.
type Messages []Message

// Error summarizes the first few messages.
func (ms Messages) Error() string {
	if len(ms) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ms)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		m := ms[i]
		// e.g. incorrect_type at /properties (type)
		fmt.Fprintf(b, "%s at %s", m.ID, displayPointer(m.Pointer))
		if m.Keyword != "" {
			fmt.Fprintf(b, " (%s)", m.Keyword)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsMessages extracts Messages from an error using errors.As.
func AsMessages(err error) (Messages, bool) {
	if err == nil {
		return nil, false
	}
	var ms Messages
	if errors.As(err, &ms) {
		return ms, true
	}
	return nil, false
}

func displayPointer(p string) string {
	if p == "" {
		return "#"
	}
	return p
}

// Faults. These signal setup or programming errors and are returned as Go
// errors, never folded into a Report.
var (
	ErrUnknownDraft    = errors.New("schemacheck: unknown draft")
	ErrKeywordAbsent   = errors.New("schemacheck: keyword absent from schema node")
	ErrPointerNotFound = errors.New("schemacheck: pointer does not resolve")
	ErrNilDictionary   = errors.New("schemacheck: nil dictionary")
	// ErrAborted is returned when a fail-fast report stopped the walk, or the
	// context was cancelled between two nodes.
	ErrAborted = errors.New("schemacheck: walk aborted")
)

// FaultError adds location context to a fault.
type FaultError struct {
	Op      string
	Pointer string
	Keyword string
	Err     error
}

func (e *FaultError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "schemacheck: %s at %s", e.Op, displayPointer(e.Pointer))
	if e.Keyword != "" {
		fmt.Fprintf(b, " (keyword %q)", e.Keyword)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FaultError) Unwrap() error { return e.Err }

func wrapNotFound(err error) error { return fmt.Errorf("%w: %v", ErrPointerNotFound, err) }
