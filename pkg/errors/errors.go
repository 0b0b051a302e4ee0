// Package errors provides the error taxonomy for the recipes library.
// All preprocessing failures fall into three structured categories:
// schema problems (missing, duplicate or misassigned columns), lifecycle
// misuse (operations invoked in the wrong recipe state) and domain
// violations (a transformation undefined for an observed value). Each
// error type carries enough context to name the offending column(s) and
// step kind, attaches a stack trace via cockroachdb/errors, and can emit
// itself as a structured zerolog object.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// SchemaError reports a missing, duplicate or misassigned column in a
// dataset or declaration.
type SchemaError struct {
	Op       string   // operation that detected the problem, e.g. "Recipe.Prep"
	StepKind string   // step kind involved, empty when the recipe itself failed
	Columns  []string // offending column names
	Reason   string
}

func (e *SchemaError) Error() string {
	cols := strings.Join(e.Columns, ", ")
	if e.StepKind != "" {
		return fmt.Sprintf("recipes: %s: step %s: column(s) [%s]: %s", e.Op, e.StepKind, cols, e.Reason)
	}
	return fmt.Sprintf("recipes: %s: column(s) [%s]: %s", e.Op, cols, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("step_kind", e.StepKind).
		Strs("columns", e.Columns).
		Str("reason", e.Reason).
		Str("type", "SchemaError")
}

// NewSchemaError creates a SchemaError with a stack trace attached.
func NewSchemaError(op, stepKind string, columns []string, reason string) error {
	err := &SchemaError{Op: op, StepKind: stepKind, Columns: columns, Reason: reason}
	return errors.WithStack(err)
}

// StateError reports an operation invoked in the wrong lifecycle state:
// an unprepared recipe baked, a prepared recipe re-prepared or recomposed,
// an unfitted model asked to predict.
type StateError struct {
	Component string // e.g. "Recipe", "Regression"
	Method    string // method that was refused
	Reason    string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("recipes: %s.%s: %s", e.Component, e.Method, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *StateError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("component", e.Component).
		Str("method", e.Method).
		Str("reason", e.Reason).
		Str("type", "StateError")
}

// NewStateError creates a StateError with a stack trace attached.
func NewStateError(component, method, reason string) error {
	err := &StateError{Component: component, Method: method, Reason: reason}
	return errors.WithStack(err)
}

// NewNotFittedError creates a StateError for the common case of calling a
// method that requires a fitted model or prepared recipe.
func NewNotFittedError(component, method string) error {
	return NewStateError(component, method,
		fmt.Sprintf("not fitted yet; call Fit() or Prep() before %s()", method))
}

// DomainError reports a transformation that is undefined for an observed
// value, e.g. a non-positive input to a log transform after its offset.
type DomainError struct {
	StepKind string
	Column   string
	Row      int
	Value    float64
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("recipes: step %s: column %q row %d: value %g %s",
		e.StepKind, e.Column, e.Row, e.Value, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DomainError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("step_kind", e.StepKind).
		Str("column", e.Column).
		Int("row", e.Row).
		Float64("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "DomainError")
}

// NewDomainError creates a DomainError with a stack trace attached.
func NewDomainError(stepKind, column string, row int, value float64, reason string) error {
	err := &DomainError{StepKind: stepKind, Column: column, Row: row, Value: value, Reason: reason}
	return errors.WithStack(err)
}

// DimensionError reports an input whose shape does not match expectations.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("recipes: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("recipes: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an existing error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives a dataset with no rows or columns.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a design matrix cannot be inverted.
	ErrSingularMatrix = New("singular matrix")
)
