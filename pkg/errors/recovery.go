package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// PanicError is a panic caught at a library boundary and converted into an
// error. Prep, Bake, Fit and Predict all recover panics this way so a bug
// inside a transformation surfaces as an error return, never as a crash of
// the calling program.
type PanicError struct {
	Op    string      // operation that recovered the panic, e.g. "Recipe.Bake"
	Value interface{} // original value passed to panic()
	Stack string      // stack trace captured at recovery
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("recipes: panic in %s: %v", e.Op, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
// The stack is deliberately left out of the structured form; it is large
// and the logger already extracts stack traces from wrapped errors.
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("panic_value", fmt.Sprint(e.Value)).
		Str("type", "PanicError")
}

// NewPanicError creates a PanicError, capturing the current stack.
func NewPanicError(op string, value interface{}) *PanicError {
	return &PanicError{Op: op, Value: value, Stack: string(debug.Stack())}
}

// Recover converts a panic into a PanicError assigned through err. It is
// meant to be deferred at the top of an exported operation, with a pointer
// to the operation's named error return:
//
//	func (r *Recipe) Bake(t *table.Table) (_ *table.Table, err error) {
//	    defer recipesErrors.Recover(&err, "Recipe.Bake")
//	    ...
//	}
//
// When the operation already set an error before panicking, the panic
// wraps it so the original cause stays reachable through Is and As.
func Recover(err *error, op string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)", op, r, *err)
			return
		}
		*err = NewPanicError(op, r)
	}
}
