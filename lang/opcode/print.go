package opcode

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes an indented, human-readable dump of an opcode stream, one
// instruction per line. The compiler's golden test does not use it; it
// prints each opcode's String form instead.
type Printer struct {
	Output io.Writer
	Indent string
}

// Print writes ops to p.Output, recursing into QuoteOp/ProgOp bodies with
// one extra indentation level.
func (p *Printer) Print(ops []Opcode) error {
	if p.Indent == "" {
		p.Indent = "  "
	}
	return p.print(ops, 0)
}

func (p *Printer) print(ops []Opcode, depth int) error {
	prefix := strings.Repeat(p.Indent, depth)
	for _, op := range ops {
		switch op := op.(type) {
		case QuoteOp:
			if _, err := fmt.Fprintf(p.Output, "%squote[\n", prefix); err != nil {
				return err
			}
			if err := p.print(op.Body, depth+1); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(p.Output, "%s]\n", prefix); err != nil {
				return err
			}
		case ProgOp:
			if _, err := fmt.Fprintf(p.Output, "%sprog(\n", prefix); err != nil {
				return err
			}
			if err := p.print(op.Body, depth+1); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(p.Output, "%s)\n", prefix); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(p.Output, "%s%s\n", prefix, op); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sprint returns the printed form of ops as a string.
func Sprint(ops []Opcode) string {
	var b strings.Builder
	p := Printer{Output: &b}
	_ = p.Print(ops)
	return b.String()
}
