package schemacheck

import (
	"context"

	"github.com/reoring/schemacheck/loader"
)

// Check validates the syntax of a decoded schema document and returns the
// report. The error is non-nil only for faults, unknown drafts, and aborted
// walks (ErrAborted); in the last case the partial report is returned too.
func Check(ctx context.Context, doc any, opts ...CheckOpt) (*Report, error) {
	o := mergeCheckOpts(opts)
	tree := NewTree(doc)
	dict, err := o.dictionaryFor(tree)
	if err != nil {
		return nil, err
	}
	w, err := NewWalker(dict, WalkOpt{Logger: o.Logger, SkipUnknownWarnings: o.SkipUnknownWarnings})
	if err != nil {
		return nil, err
	}
	report := NewReport(ReportOpt{FailFast: o.FailFast, Threshold: o.Threshold})
	if err := w.Walk(ctx, tree, report); err != nil {
		return report, err
	}
	return report, nil
}

// CheckBytes decodes JSON text and checks it. Undecodable input fails with a
// *loader.MalformedInputError before any walk.
func CheckBytes(ctx context.Context, data []byte, opts ...CheckOpt) (*Report, error) {
	doc, err := loader.JSONBytes(data)
	if err != nil {
		return nil, err
	}
	return Check(ctx, doc, opts...)
}

// CheckYAML decodes the first YAML document of data and checks it.
func CheckYAML(ctx context.Context, data []byte, opts ...CheckOpt) (*Report, error) {
	doc, err := loader.YAMLBytes(data)
	if err != nil {
		return nil, err
	}
	return Check(ctx, doc, opts...)
}

// IsValid reports whether doc has no syntax errors under the selected draft.
func IsValid(ctx context.Context, doc any, opts ...CheckOpt) bool {
	r, err := Check(ctx, doc, opts...)
	return err == nil && r.IsSuccess()
}

// dictionaryFor picks, in order: an explicit dictionary, an explicit draft,
// the root's $schema, DefaultDraft.
func (o CheckOpt) dictionaryFor(tree Tree) (*Dictionary, error) {
	if o.Dictionary != nil {
		return o.Dictionary, nil
	}
	if o.Draft != "" {
		return DictionaryFor(o.Draft)
	}
	if v, ok := tree.Get("$schema"); ok {
		if s, ok := v.(string); ok {
			if d, ok := DraftFromURI(s); ok {
				return DictionaryFor(d)
			}
			o.Logger.Debug("unrecognized $schema, using default draft", "schema", s, "draft", string(DefaultDraft))
		}
	}
	return DictionaryFor(DefaultDraft)
}
