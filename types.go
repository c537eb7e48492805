package schemacheck

import (
	"fmt"
	"log/slog"
)

// Level expresses the severity of a Message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

var levelNames = [...]string{"debug", "info", "warning", "error", "fatal"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText renders the lowercase level name.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText parses a lowercase level name.
func (l *Level) UnmarshalText(b []byte) error {
	for i, n := range levelNames {
		if n == string(b) {
			*l = Level(i)
			return nil
		}
	}
	return fmt.Errorf("schemacheck: unknown level %q", string(b))
}

// ReportOpt configures a Report.
type ReportOpt struct {
	// FailFast stops recording after the first error-level message and tells
	// the walker to stop.
	FailFast bool
	// Threshold drops messages below this level; error-level messages are
	// always kept. The zero value keeps everything.
	Threshold Level
}

// CheckOpt bundles options for Check and friends.
type CheckOpt struct {
	// Draft forces a dictionary. Empty means: use $schema, else DefaultDraft.
	Draft Draft
	// Dictionary overrides Draft entirely (custom keywords).
	Dictionary *Dictionary
	FailFast   bool
	Threshold  Level
	// Logger receives walk traces; nil means slog.Default().
	Logger *slog.Logger
	// SkipUnknownWarnings suppresses the per-node unknown_keywords warning.
	SkipUnknownWarnings bool
}

func mergeCheckOpts(opts []CheckOpt) CheckOpt {
	var o CheckOpt
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
