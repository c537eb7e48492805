package schemacheck_test

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	sc "github.com/reoring/schemacheck"
)

// runKeyword runs one keyword's checker on schema and returns the report and
// the pointers it declared.
func runKeyword(t *testing.T, draft sc.Draft, keyword string, schema map[string]any) (*sc.Report, []sc.Pointer) {
	t.Helper()
	dict, err := sc.DictionaryFor(draft)
	require.NoError(t, err)
	c, ok := dict.Get(keyword)
	require.True(t, ok, "keyword %s not in %s", keyword, draft)
	r := sc.NewReport()
	ps, err := c.CheckSyntax(r, sc.NewTree(schema))
	require.NoError(t, err)
	return r, ps
}

func pointers(ss ...string) []sc.Pointer {
	out := make([]sc.Pointer, len(ss))
	for i, s := range ss {
		out[i] = sc.MustParsePointer(s)
	}
	return out
}

func pointerStrings(ps []sc.Pointer) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func messageIDs(ms sc.Messages) []sc.MessageID {
	out := make([]sc.MessageID, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

// sampleValues has one decoded value per NodeType.
var sampleValues = map[sc.NodeType]any{
	sc.Array:   []any{json.Number("1")},
	sc.Boolean: true,
	sc.Integer: json.Number("3"),
	sc.Null:    nil,
	sc.Number:  json.Number("2.5"),
	sc.Object:  map[string]any{},
	sc.String:  "s",
}

func mustJSON(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}
