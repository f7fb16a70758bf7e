package scanner

import "fmt"

// LexError marks a failure raised while tokenizing input, distinguishing it
// from the compiler's ParseError and the machine's runtime Error categories
// so a caller can use errors.As to branch on it without string matching.
type LexError struct {
	msg string
}

func (e *LexError) Error() string { return e.msg }

func lexErrorf(format string, args ...any) error {
	return &LexError{msg: fmt.Sprintf("lex error: %s", fmt.Sprintf(format, args...))}
}
