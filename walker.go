package schemacheck

import (
	"context"
	"fmt"
	"log/slog"
)

// WalkOpt configures a Walker.
type WalkOpt struct {
	// Logger receives per-node traces; nil means slog.Default().
	Logger *slog.Logger
	// SkipUnknownWarnings suppresses the unknown_keywords warning.
	SkipUnknownWarnings bool
}

// Walker checks every schema node reachable from a starting position. It holds
// no per-run state and may be shared.
type Walker struct {
	dict        *Dictionary
	logger      *slog.Logger
	warnUnknown bool
}

// NewWalker returns a Walker over dict. Only the first WalkOpt is used.
func NewWalker(dict *Dictionary, opts ...WalkOpt) (*Walker, error) {
	if dict == nil {
		return nil, ErrNilDictionary
	}
	var o WalkOpt
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return &Walker{dict: dict, logger: o.Logger, warnUnknown: !o.SkipUnknownWarnings}, nil
}

// Dictionary returns the dictionary the walker dispatches to.
func (w *Walker) Dictionary() *Dictionary { return w.dict }

// Walk checks the node at tree's position and every sub-schema the checkers
// point to, breadth first. Syntax errors land in report; the returned error is
// either a fault (a checker or pointer bug) or ErrAborted when report is
// fail-fast and tripped, or ctx was cancelled between two nodes.
func (w *Walker) Walk(ctx context.Context, tree Tree, report *Report) error {
	if t := tree.NodeType(); !w.isSchema(t) {
		report.Error(Message{
			ID:      MsgInvalidRoot,
			Pointer: tree.Pointer().String(),
			Fields:  map[string]any{"expected": w.schemaTypes(), "found": t},
		})
		return w.stopped(report)
	}

	queue := []Pointer{tree.Pointer()}
	visited := make(map[string]struct{})
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			w.logger.Warn("schema walk cancelled", "pending", len(queue), "err", err)
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}
		if report.Stopped() {
			return w.stopped(report)
		}
		p := queue[0]
		queue = queue[1:]

		key := p.String()
		if _, seen := visited[key]; seen {
			w.logger.Debug("schema node already checked", "pointer", displayPointer(key))
			continue
		}
		visited[key] = struct{}{}

		node, err := tree.Navigate(p)
		if err != nil {
			return err
		}
		children, err := w.checkNode(report, node)
		if err != nil {
			return err
		}
		queue = append(queue, children...)
	}
	return w.stopped(report)
}

// checkNode runs every known keyword of one node in sorted order and collects
// the sub-schema pointers they declare.
func (w *Walker) checkNode(report *Report, node Tree) ([]Pointer, error) {
	var (
		children []Pointer
		unknown  []string
	)
	for _, kw := range node.Keywords() {
		c, ok := w.dict.Get(kw)
		if !ok {
			unknown = append(unknown, kw)
			continue
		}
		ps, err := c.CheckSyntax(report, node)
		if err != nil {
			return nil, err
		}
		children = append(children, ps...)
		if report.Stopped() {
			return nil, nil
		}
	}
	ptr := node.Pointer().String()
	w.logger.Debug("schema node checked",
		"pointer", displayPointer(ptr),
		"draft", string(w.dict.Draft()),
		"children", len(children),
		"unknown", len(unknown))
	if len(unknown) > 0 && w.warnUnknown {
		report.Warn(Message{ID: MsgUnknownKeywords, Pointer: ptr, Fields: map[string]any{"ignored": unknown}})
	}
	return children, nil
}

func (w *Walker) stopped(report *Report) error {
	if report.Stopped() {
		w.logger.Warn("schema walk stopped at first error (fail-fast)")
		return ErrAborted
	}
	return nil
}

func (w *Walker) schemaTypes() NodeTypes {
	if w.dict.AllowsBooleanSchemas() {
		return TypesOf(Object, Boolean)
	}
	return TypesOf(Object)
}

func (w *Walker) isSchema(t NodeType) bool { return w.schemaTypes().Has(t) }
