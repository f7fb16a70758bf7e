package compiler

import "fmt"

// ParseError marks a failure raised while folding tokens into opcodes,
// distinguishing it from the scanner's LexError and the machine's runtime
// Error categories so a caller can use errors.As to branch on it without
// string matching.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

func parseErrorf(format string, args ...any) error {
	return &ParseError{msg: fmt.Sprintf("parse error: %s", fmt.Sprintf(format, args...))}
}
