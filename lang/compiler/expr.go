package compiler

import "github.com/stakvm/stak/lang/opcode"

// expr is the compiler's private intermediate representation: a small tree
// built while parsing one statement, flattened to a postfix opcode list by
// walk once the statement is complete. It never escapes this package.
type expr interface {
	isExpr()
}

type blankExpr struct{}

func (blankExpr) isExpr() {}

// singleExpr is a leaf: one already-compiled opcode.
type singleExpr struct{ code opcode.Opcode }

func (singleExpr) isExpr() {}

// doubleExpr is two opcodes emitted back to back (used for unary negation
// of a symbol: push the symbol, then apply MathOp::Neg).
type doubleExpr struct{ c1, c2 opcode.Opcode }

func (doubleExpr) isExpr() {}

// groupExpr is an already-flattened opcode list reused verbatim (a
// parenthesised group, or the body accumulated by parseUntil).
type groupExpr struct{ code []opcode.Opcode }

func (groupExpr) isExpr() {}

// binaryExpr is lhs, rhs, then op.
type binaryExpr struct {
	op       opcode.Opcode
	lhs, rhs expr
}

func (binaryExpr) isExpr() {}

// leftCodeExpr emits code before rhs (used for a layout AddLine opcode that
// precedes the primary it was folded into).
type leftCodeExpr struct {
	code opcode.Opcode
	rhs  expr
}

func (leftCodeExpr) isExpr() {}

// rightCodeExpr emits rhs then code (used for an AddLine that trails the
// expression it was folded after, and for a leading-infix postfix section).
type rightCodeExpr struct {
	code opcode.Opcode
	rhs  expr
}

func (rightCodeExpr) isExpr() {}

// callExpr emits its pre-built argument quote opcodes, then the callee.
type callExpr struct {
	argCodes []opcode.Opcode
	callee   expr
}

func (callExpr) isExpr() {}

// quoteExpr boxes inner as a QuoteOp.
type quoteExpr struct{ inner expr }

func (quoteExpr) isExpr() {}

// walk flattens expr into a postfix opcode sequence.
func walk(e expr) []opcode.Opcode {
	switch e := e.(type) {
	case blankExpr:
		return nil
	case singleExpr:
		return []opcode.Opcode{e.code}
	case doubleExpr:
		return []opcode.Opcode{e.c1, e.c2}
	case groupExpr:
		return e.code
	case binaryExpr:
		out := walk(e.lhs)
		out = append(out, walk(e.rhs)...)
		out = append(out, e.op)
		return out
	case leftCodeExpr:
		out := []opcode.Opcode{e.code}
		return append(out, walk(e.rhs)...)
	case rightCodeExpr:
		out := walk(e.rhs)
		return append(out, e.code)
	case callExpr:
		out := append([]opcode.Opcode(nil), e.argCodes...)
		return append(out, walk(e.callee)...)
	case quoteExpr:
		return []opcode.Opcode{opcode.QuoteOp{Body: walk(e.inner)}}
	default:
		return nil
	}
}

// walkAssign flattens the left-hand side of an assignment. A bare name
// (Str/Sym) compiles to Set/SetProg; any other left-hand side compiles to
// its own raw opcodes, per the left-hand-side-general-expression rule.
func walkAssign(e expr, isProg bool) []opcode.Opcode {
	single, ok := e.(singleExpr)
	if !ok {
		return walk(e)
	}
	var name string
	switch code := single.code.(type) {
	case opcode.StrOp:
		name = code.S
	case opcode.SymOp:
		name = code.Name
	default:
		return []opcode.Opcode{single.code}
	}
	if isProg {
		return []opcode.Opcode{opcode.SetProgOp{Name: name}}
	}
	return []opcode.Opcode{opcode.SetOp{Name: name}}
}
