package runtime

import (
	"errors"
	"fmt"
)

// FailureKind classifies a user-facing failure.
type FailureKind int

const (
	TypeError FailureKind = iota
	ArityError
	AlreadyDeclared
	ArithmeticError
	ReferenceError
	OutputError
)

func (k FailureKind) String() string {
	switch k {
	case TypeError:
		return "type error"
	case ArityError:
		return "arity error"
	case AlreadyDeclared:
		return "already declared"
	case ArithmeticError:
		return "arithmetic error"
	case ReferenceError:
		return "reference error"
	case OutputError:
		return "output error"
	default:
		return "error"
	}
}

// Failure is the only error a script can raise. It aborts the run.
type Failure struct {
	Kind FailureKind
	Line int
	Msg  string
}

func (f *Failure) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("at line %d, %s: %s", f.Line, f.Kind, f.Msg)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func newFailure(kind FailureKind, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func TypeErrorf(format string, args ...interface{}) *Failure {
	return newFailure(TypeError, format, args...)
}

func ArityErrorf(format string, args ...interface{}) *Failure {
	return newFailure(ArityError, format, args...)
}

func ArithmeticErrorf(format string, args ...interface{}) *Failure {
	return newFailure(ArithmeticError, format, args...)
}

func AlreadyDeclaredf(format string, args ...interface{}) *Failure {
	return newFailure(AlreadyDeclared, format, args...)
}

func ReferenceErrorf(format string, args ...interface{}) *Failure {
	return newFailure(ReferenceError, format, args...)
}

func OutputErrorf(format string, args ...interface{}) *Failure {
	return newFailure(OutputError, format, args...)
}

// Arity is the standard arity failure, carrying both counts.
func Arity(expected, actual int) *Failure {
	return ArityErrorf("expected %d arguments, got %d", expected, actual)
}

// WithLine stamps a source line on a failure that does not carry one yet.
// Failures raised deeper in the call keep their own line. Non-failure
// errors pass through untouched.
func WithLine(err error, line int) error {
	var f *Failure
	if errors.As(err, &f) && f.Line == 0 {
		stamped := *f
		stamped.Line = line
		return &stamped
	}
	return err
}

// AsFailure extracts a Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
