package schemacheck

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/schemacheck/i18n"
)

// Report accumulates the messages of one validation run. It is not safe for
// concurrent use; each run owns its own Report.
type Report struct {
	opt     ReportOpt
	msgs    Messages
	failed  bool
	stopped bool
}

// NewReport returns an empty report. Only the first ReportOpt is used.
func NewReport(opts ...ReportOpt) *Report {
	r := &Report{}
	if len(opts) > 0 {
		r.opt = opts[0]
	}
	return r
}

// Log appends m. Logging never fails: once a fail-fast report has stopped,
// further messages are dropped.
func (r *Report) Log(m Message) {
	if r.stopped {
		return
	}
	if m.Level >= LevelError {
		r.failed = true
	}
	if m.Level >= r.opt.Threshold || m.Level >= LevelError {
		if m.Text == "" {
			m.Text = i18n.T(string(m.ID), renderFields(m.Fields))
		}
		r.msgs = append(r.msgs, m)
	}
	if r.opt.FailFast && m.Level >= LevelError {
		r.stopped = true
	}
}

// Debug logs m at LevelDebug.
func (r *Report) Debug(m Message) { m.Level = LevelDebug; r.Log(m) }

// Info logs m at LevelInfo.
func (r *Report) Info(m Message) { m.Level = LevelInfo; r.Log(m) }

// Warn logs m at LevelWarning.
func (r *Report) Warn(m Message) { m.Level = LevelWarning; r.Log(m) }

// Error logs m at LevelError and marks the report as failed.
func (r *Report) Error(m Message) { m.Level = LevelError; r.Log(m) }

// Fatal logs m at LevelFatal and marks the report as failed.
func (r *Report) Fatal(m Message) { m.Level = LevelFatal; r.Log(m) }

// IsSuccess reports whether no error-or-above message was logged so far.
func (r *Report) IsSuccess() bool { return !r.failed }

// Stopped reports whether a fail-fast report has tripped.
func (r *Report) Stopped() bool { return r.stopped }

// Len is the number of recorded messages.
func (r *Report) Len() int { return len(r.msgs) }

// Messages returns a copy of the recorded messages in logging order.
func (r *Report) Messages() Messages { return append(Messages(nil), r.msgs...) }

// Errors returns the recorded messages at LevelError or above.
func (r *Report) Errors() Messages {
	var out Messages
	for _, m := range r.msgs {
		if m.Level >= LevelError {
			out = append(out, m)
		}
	}
	return out
}

// Err returns the error-level messages as an error, or nil on success.
func (r *Report) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return r.Errors()
}

// MarshalJSON renders {"success": bool, "messages": [...]}.
func (r *Report) MarshalJSON() ([]byte, error) {
	msgs := r.msgs
	if msgs == nil {
		msgs = Messages{}
	}
	return json.Marshal(struct {
		Success  bool     `json:"success"`
		Messages Messages `json:"messages"`
	}{Success: r.IsSuccess(), Messages: msgs})
}

func renderFields(fields map[string]any) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = fmt.Sprint(v)
	}
	return out
}
