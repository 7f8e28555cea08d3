package purr

import (
	"errors"
	"fmt"
)

// ErrorCode tags every failure raised by the runtime. The set is closed.
type ErrorCode int

const (
	TypeMismatch ErrorCode = iota + 1
	InvalidOp
	DivideByZero
	BadConversion
	InvalidImport
	CriticalError
	ExternalError
)

func (c ErrorCode) String() string {
	switch c {
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidOp:
		return "InvalidOp"
	case DivideByZero:
		return "DivideByZero"
	case BadConversion:
		return "BadConversion"
	case InvalidImport:
		return "InvalidImport"
	case CriticalError:
		return "CriticalError"
	case ExternalError:
		return "ExternalError"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Sentinels for errors.Is. They match any *Error carrying the same code.
var (
	ErrTypeMismatch  = &Error{Code: TypeMismatch}
	ErrInvalidOp     = &Error{Code: InvalidOp}
	ErrDivideByZero  = &Error{Code: DivideByZero}
	ErrBadConversion = &Error{Code: BadConversion}
	ErrInvalidImport = &Error{Code: InvalidImport}
	ErrCritical      = &Error{Code: CriticalError}
	ErrExternal      = &Error{Code: ExternalError}
)

// Error is a runtime failure with a code from the taxonomy.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code && (other.Message == "" || other.Message == e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func typeMismatch(format string, args ...any) error {
	return newError(TypeMismatch, format, args...)
}

func invalidOp(format string, args ...any) error {
	return newError(InvalidOp, format, args...)
}

func badConversion(format string, args ...any) error {
	return newError(BadConversion, format, args...)
}

func invalidImport(format string, args ...any) error {
	return newError(InvalidImport, format, args...)
}

func criticalError(format string, args ...any) error {
	return newError(CriticalError, format, args...)
}

// External wraps a failure that originated outside the runtime. Errors that
// already belong to the taxonomy pass through untouched.
func External(err error) error {
	if err == nil {
		return nil
	}
	var known *Error
	if errors.As(err, &known) {
		return err
	}
	return &Error{Code: ExternalError, Message: err.Error(), Cause: err}
}

// CodeOf reports the taxonomy code of err, or 0 when err is not a runtime error.
func CodeOf(err error) ErrorCode {
	var known *Error
	if errors.As(err, &known) {
		return known.Code
	}
	return 0
}
