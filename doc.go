// Package schemacheck checks that a JSON Schema document is itself well
// formed: every keyword's value has the type and shape its draft requires.
// It does not validate instance data against the schema.
//
// - Per-draft immutable keyword Dictionaries (draft-03, draft-04, draft-06)
// - A stable diagnostic model: Messages with an ID, a JSON Pointer and structured fields
// - Collect-all by default, fail-fast on request
// - ECMA-262 checking of regular expressions in pattern and patternProperties
//
// Design policy:
// - Keep the public API in the root package; the regex validator lives under internal/.
// - Put document decoding under loader/, message texts under i18n/, and the CLI under cmd/schemacheck.
// - A Checker reports syntax problems to the Report and returns the sub-schema
//   pointers it found; the Walker descends into them. Go errors are reserved for faults.
//
// Typical usage:
//
//	report, err := schemacheck.CheckBytes(ctx, data)
//	if err != nil {
//		return err // malformed JSON, unknown draft, or a fault
//	}
//	for _, m := range report.Errors() {
//		fmt.Println(m.Pointer, m.Keyword, m.ID, m.Fields)
//	}
//
// Custom keywords:
//
//	base, _ := schemacheck.DictionaryFor(schemacheck.Draft4)
//	dict := base.Thaw().
//		Add("x-order", schemacheck.NewChecker("x-order", schemacheck.TypesOf(schemacheck.Integer), nil)).
//		Freeze()
//	report, err := schemacheck.Check(ctx, doc, schemacheck.CheckOpt{Dictionary: dict})
package schemacheck
