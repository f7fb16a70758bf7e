package machine

import "fmt"

// ErrorKind classifies a runtime failure so callers (the REPL driver,
// tests) can branch on category instead of matching error text. Lexical and
// parse failures are distinguished the same way but through their own
// sentinel types, lang/scanner.LexError and lang/compiler.ParseError, since
// those packages sit ahead of the machine in the pipeline and have no
// reason to import it; the categories constructed here are the ones the
// machine itself can raise during dispatch.
type ErrorKind uint8

//nolint:revive
const (
	LookupError ErrorKind = iota
	TypeError
	UnderflowError
	OverflowError
	DomainError
	RuntimeError
)

func (k ErrorKind) String() string { return errorKindNames[k] }

var errorKindNames = [...]string{
	LookupError:    "LookupError",
	TypeError:      "TypeError",
	UnderflowError: "UnderflowError",
	OverflowError:  "OverflowError",
	DomainError:    "DomainError",
	RuntimeError:   "RuntimeError",
}

// Error is a runtime error tagged with its ErrorKind, letting callers use
// errors.As to recover the category of a failure returned from Run.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf("%s: %s", kind, fmt.Sprintf(format, args...))}
}

func lookupErrorf(format string, args ...any) error    { return newError(LookupError, format, args...) }
func typeErrorf(format string, args ...any) error       { return newError(TypeError, format, args...) }
func underflowErrorf(format string, args ...any) error  { return newError(UnderflowError, format, args...) }
func overflowErrorf(format string, args ...any) error   { return newError(OverflowError, format, args...) }
func domainErrorf(format string, args ...any) error     { return newError(DomainError, format, args...) }
func runtimeErrorf(format string, args ...any) error    { return newError(RuntimeError, format, args...) }
