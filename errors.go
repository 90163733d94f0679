package pixel

import "fmt"

// Kind classifies an Error for callers that want to branch on it with
// errors.Is, without string-matching messages.
type Kind uint8

const (
	kindGeneric Kind = iota
	kindKeyExhausted
	kindInvalidTime
	kindInvalidParameters
	kindInvalidGroupElement
)

// Error is the interface returned by every fallible operation in this
// package. Locked has no meaning here (there is no on-disk key state to
// lock) and always returns false; it is kept because callers type-switch
// on Error uniformly and dropping the method would split that surface.
type Error interface {
	error
	Locked() bool
	Inner() error
}

type errorImpl struct {
	kind  Kind
	msg   string
	inner error
}

func (err *errorImpl) Locked() bool { return false }
func (err *errorImpl) Inner() error { return err.inner }

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (err *errorImpl) Unwrap() error { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.inner.Error())
	}
	return err.msg
}

// Is lets errors.Is(err, ErrKeyExhausted) (and friends) work across
// wrapped errors without exposing the kind field itself.
func (err *errorImpl) Is(target error) bool {
	other, ok := target.(*errorImpl)
	return ok && other.kind != kindGeneric && other.kind == err.kind
}

// errorf formats a new Error carrying no particular kind.
func errorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...)}
}

// wrapErrorf formats a new Error that wraps another.
func wrapErrorf(err error, format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), inner: err}
}

func keyExhaustedErrorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{kind: kindKeyExhausted, msg: fmt.Sprintf(format, a...)}
}

func invalidTimeErrorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{kind: kindInvalidTime, msg: fmt.Sprintf(format, a...)}
}

func invalidParametersErrorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{kind: kindInvalidParameters, msg: fmt.Sprintf(format, a...)}
}

func invalidGroupElementErrorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{kind: kindInvalidGroupElement, msg: fmt.Sprintf(format, a...)}
}

// Sentinel values for use with errors.Is. Every error this package
// returns with a non-generic kind matches exactly one of these.
var (
	// ErrKeyExhausted is returned by (*SecretKey).Update once the
	// 2^D-2 legal updates from genesis have all been consumed.
	ErrKeyExhausted Error = &errorImpl{kind: kindKeyExhausted, msg: "key exhausted"}

	// ErrInvalidTime is returned when a time index or time vector is
	// out of range, or a fast-update target does not strictly exceed
	// the current time.
	ErrInvalidTime Error = &errorImpl{kind: kindInvalidTime, msg: "invalid time"}

	// ErrInvalidParameters is returned when public parameters are
	// malformed or mismatched with the caller's depth.
	ErrInvalidParameters Error = &errorImpl{kind: kindInvalidParameters, msg: "invalid parameters"}

	// ErrInvalidGroupElement is returned when a group element fails a
	// subgroup-membership check.
	ErrInvalidGroupElement Error = &errorImpl{kind: kindInvalidGroupElement, msg: "invalid group element"}
)
