// Package loader turns JSON or YAML text into the decoded-JSON values
// (map[string]any, []any, string, bool, nil and numbers) that schema checks
// run on. Numbers keep their literal form so integers and decimals stay
// distinguishable.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformedInput is matched by every decoding failure.
var ErrMalformedInput = errors.New("loader: malformed input")

// MalformedInputError reports text that could not be decoded into a tree.
type MalformedInputError struct {
	Format string // "json" or "yaml"
	Source string // file name when known
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("loader: malformed %s in %s: %v", e.Format, e.Source, e.Err)
	}
	return fmt.Sprintf("loader: malformed %s: %v", e.Format, e.Err)
}

func (e *MalformedInputError) Unwrap() []error { return []error{ErrMalformedInput, e.Err} }

// File loads path, choosing YAML for .yaml/.yml and JSON otherwise.
func File(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v, err = YAMLBytes(data)
	default:
		v, err = JSONBytes(data)
	}
	var me *MalformedInputError
	if errors.As(err, &me) {
		me.Source = path
	}
	return v, err
}
