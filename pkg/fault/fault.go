// Package fault defines the error taxonomy shared by every stage of a
// generation run: config validation, geometry, and export. The CLI uses
// StageOf to report which stage failed.
package fault

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by GeometryError.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnsupported      = errors.New("unsupported operation")
)

// Stage identifies the pipeline stage an error originated from.
type Stage int

const (
	StageUnknown Stage = iota
	StageConfig
	StageGeometry
	StageExport
)

func (s Stage) String() string {
	switch s {
	case StageConfig:
		return "config validation"
	case StageGeometry:
		return "geometry"
	case StageExport:
		return "export"
	default:
		return "unknown"
	}
}

// ValidationError reports a config field that violates a domain
// constraint. It is raised before any geometry is built.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s = %v: %s", e.Field, e.Value, e.Reason)
}

// Invalid is shorthand for constructing a ValidationError.
func Invalid(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// GeometryError reports a primitive or modifier that cannot be realized.
type GeometryError struct {
	Part   string // part name, empty when not yet attached to a part
	Op     string // e.g. "build icosphere", "bevel"
	Reason string
	Err    error // ErrInvalidParameter, ErrUnsupported or an underlying cause
}

func (e *GeometryError) Error() string {
	msg := e.Op
	if e.Part != "" {
		msg = fmt.Sprintf("part %q: %s", e.Part, e.Op)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil && e.Reason == "" {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GeometryError) Unwrap() error { return e.Err }

// BadParam returns a GeometryError wrapping ErrInvalidParameter.
func BadParam(op, format string, args ...any) *GeometryError {
	return &GeometryError{Op: op, Reason: fmt.Sprintf(format, args...), Err: ErrInvalidParameter}
}

// WithPart returns err with the part name attached when err is a
// GeometryError that does not carry one yet. Other errors pass through.
func WithPart(err error, part string) error {
	var ge *GeometryError
	if errors.As(err, &ge) && ge.Part == "" {
		cp := *ge
		cp.Part = part
		return &cp
	}
	return err
}

// ExportKind enumerates export failure modes.
type ExportKind int

const (
	NoSelection ExportKind = iota
	NotBaked
	IOFailure
	Unsupported
)

func (k ExportKind) String() string {
	switch k {
	case NoSelection:
		return "no selection"
	case NotBaked:
		return "not baked"
	case IOFailure:
		return "io failure"
	case Unsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("ExportKind(%d)", int(k))
	}
}

// ExportError reports an empty selection, an unbaked part, or a sink
// write failure.
type ExportError struct {
	Kind ExportKind
	Path string
	Part string
	Err  error
}

func (e *ExportError) Error() string {
	msg := "export " + e.Kind.String()
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Part != "" {
		msg += fmt.Sprintf(": part %q", e.Part)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsExportKind reports whether err is an ExportError of the given kind.
func IsExportKind(err error, kind ExportKind) bool {
	var ee *ExportError
	return errors.As(err, &ee) && ee.Kind == kind
}

// StageOf classifies an error chain by pipeline stage.
func StageOf(err error) Stage {
	var (
		ve *ValidationError
		ge *GeometryError
		ee *ExportError
	)
	switch {
	case err == nil:
		return StageUnknown
	case errors.As(err, &ve):
		return StageConfig
	case errors.As(err, &ge):
		return StageGeometry
	case errors.As(err, &ee):
		return StageExport
	default:
		return StageUnknown
	}
}
