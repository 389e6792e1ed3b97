package report

import "github.com/roach88/mismatch/internal/validate"

// Reporter renders a validation result as messages. An empty slice means the
// result succeeded.
type Reporter interface {
	Report(res validate.Result) []string
}

// FirstReporter reports only the first message, as One does.
type FirstReporter struct {
	Options []Option
}

func (r FirstReporter) Report(res validate.Result) []string {
	if msg, ok := One(res, r.Options...); ok {
		return []string{msg}
	}
	return nil
}

// AllReporter reports every message, as All does.
type AllReporter struct {
	Options []Option
}

func (r AllReporter) Report(res validate.Result) []string {
	return All(res, r.Options...)
}
