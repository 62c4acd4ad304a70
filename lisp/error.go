package lisp

import (
	"errors"
	"fmt"
)

// Errno is an error code
type Errno int

// Posible Errno values
const (
	ErrnoPanic Errno = iota
	ErrnoSyntax
	ErrnoArity
	ErrnoType
	ErrnoUnbound
	ErrnoNotLambda
	ErrnoCondExhausted
	ErrnoDivZero
	ErrnoStackOverflow
	ErrnoLimit
)

var errnoStrings = []string{
	ErrnoPanic:         "PANIC",
	ErrnoSyntax:        "syntax error",
	ErrnoArity:         "arity error",
	ErrnoType:          "type error",
	ErrnoUnbound:       "unbound symbol",
	ErrnoNotLambda:     "not a lambda",
	ErrnoCondExhausted: "no cond clause matched",
	ErrnoDivZero:       "division by zero",
	ErrnoStackOverflow: "stack overflow",
	ErrnoLimit:         "limit exceeded",
}

func (n Errno) String() string {
	if n < 0 || int(n) >= len(errnoStrings) {
		return errnoStrings[ErrnoPanic]
	}
	return errnoStrings[n]
}

// Error implements the error interface so that an Errno can be the target of
// errors.Is.
func (n Errno) Error() string {
	return n.String()
}

// ErrorVal implements the error interface so that errors can be first class lisp
// objects.  The error message is stored in the Str field while contextual
// information (e.g. call stack) is stored in the Stack field.
type ErrorVal LVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return e.Str
}

// Is allows errors.Is to match an ErrorVal against its Errno.
func (e *ErrorVal) Is(target error) bool {
	errno, ok := target.(Errno)
	return ok && errno == e.Errno
}

// Error returns an LVal representing the error corresponding to err.  If err
// is (or wraps) an ErrorVal the underlying lisp error is returned.
func Error(errno Errno, err error) *LVal {
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return (*LVal)(lerr)
	}
	return &LVal{
		Type:  LError,
		Errno: errno,
		Str:   err.Error(),
	}
}

// Errorf returns an LVal representing an error with a formatted message.
func Errorf(errno Errno, format string, v ...interface{}) *LVal {
	return &LVal{
		Type:  LError,
		Errno: errno,
		Str:   fmt.Sprintf(format, v...),
	}
}

// berrf formats an error raised by the named form or builtin.
func berrf(name string, errno Errno, format string, v ...interface{}) *LVal {
	return Errorf(errno, "%s: %s", name, fmt.Sprintf(format, v...))
}

// Errorf returns an LError with a copy of the current call stack attached.
func (env *LEnv) Errorf(errno Errno, format string, v ...interface{}) *LVal {
	lerr := Errorf(errno, format, v...)
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}

// GoError returns an error that represents v.  If v is not LError then nil is
// returned.
func GoError(v *LVal) error {
	if v == nil || v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}

// ErrnoOf returns the Errno carried by err, or ErrnoPanic when err does not
// come from the evaluator.
func ErrnoOf(err error) Errno {
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return lerr.Errno
	}
	return ErrnoPanic
}
