package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics collects the findings of a schema validation or a mapping run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code is a stable identifier, e.g. "unresolved_path".
	Code    string
	Message string
	// Entity names the entity the finding is about.
	Entity string
	// Key is the criteria key as written, for findings of a mapping run.
	Key string
	// Path is the property path. For unresolved keys it is the prefix of
	// Key that did resolve.
	Path string
	// Suggestions are "did you mean" candidates.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func newf(severity Severity, code, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Errorf creates an error diagnostic.
func Errorf(code, format string, args ...any) Diagnostic {
	return newf(SeverityError, code, format, args...)
}

// Warnf creates a warning diagnostic.
func Warnf(code, format string, args ...any) Diagnostic {
	return newf(SeverityWarning, code, format, args...)
}

// Infof creates an info diagnostic.
func Infof(code, format string, args ...any) Diagnostic {
	return newf(SeverityInfo, code, format, args...)
}

// On returns d attached to an entity and property path.
func (d Diagnostic) On(entity, path string) Diagnostic {
	d.Entity = entity
	d.Path = path

	return d
}

// ForKey returns d attached to a criteria key.
func (d Diagnostic) ForKey(key string) Diagnostic {
	d.Key = key
	return d
}

// Suggest returns d with "did you mean" candidates.
func (d Diagnostic) Suggest(candidates ...string) Diagnostic {
	if len(candidates) > 0 {
		d.Suggestions = candidates
	}

	return d
}

// Add files each diagnostic under its severity.
func (d *Diagnostics) Add(items ...Diagnostic) {
	for _, item := range items {
		switch item.Severity {
		case SeverityError:
			d.Errors = append(d.Errors, item)
		case SeverityWarning:
			d.Warnings = append(d.Warnings, item)
		default:
			d.Infos = append(d.Infos, item)
		}
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge adds all findings of other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Add(other.All()...)
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// String formats d as "[Entity] key: [code] message (did you mean ...?)".
// The criteria key is shown in preference to the property path.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Entity != "" {
		prefix = append(prefix, "["+d.Entity+"]")
	}

	switch {
	case d.Key != "":
		prefix = append(prefix, d.Key)
	case d.Path != "":
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) == 0 {
		return msg
	}

	return strings.Join(prefix, " ") + ": " + msg
}
