package opcode

import "github.com/stakvm/stak/lang/token"

// InfixKind distinguishes which opcode family an infix symbol compiles to.
type InfixKind uint8

//nolint:revive
const (
	InfixBin InfixKind = iota
	InfixBool
)

// Infix describes one entry of the symbol → (opcode, precedence) table used
// by both the lexer (to tag an INFIX token) and the compiler (to build the
// corresponding instruction).
type Infix struct {
	Bin  BinOp
	Bool BoolOp
	Prec token.Prec
	Fam  InfixKind
}

// InfixTable maps a recognised symbol run to its Infix entry. Symbols not
// present here (after `=`, `:=`, `:`, `-` are stripped out as their own
// dedicated token kinds) lex as a plain Sym.
var InfixTable = map[string]Infix{
	"+":  {Fam: InfixBin, Bin: Add, Prec: token.PrecAdd},
	"*":  {Fam: InfixBin, Bin: Mul, Prec: token.PrecMul},
	"/":  {Fam: InfixBin, Bin: Div, Prec: token.PrecMul},
	"%":  {Fam: InfixBin, Bin: Mod, Prec: token.PrecMul},
	"^":  {Fam: InfixBin, Bin: Pow, Prec: token.PrecPow},
	"==": {Fam: InfixBool, Bool: Eqt, Prec: token.PrecEquality},
	"!=": {Fam: InfixBool, Bool: Neq, Prec: token.PrecEquality},
	">":  {Fam: InfixBool, Bool: Grt, Prec: token.PrecInequality},
	"<":  {Fam: InfixBool, Bool: Lst, Prec: token.PrecInequality},
	">=": {Fam: InfixBool, Bool: Gte, Prec: token.PrecInequality},
	"<=": {Fam: InfixBool, Bool: Lte, Prec: token.PrecInequality},
	"&":  {Fam: InfixBool, Bool: And, Prec: token.PrecAnd},
	"|":  {Fam: InfixBool, Bool: Or, Prec: token.PrecOr},
	"..": {Fam: InfixBin, Bin: Seq, Prec: token.PrecSeq},
	"++": {Fam: InfixBin, Bin: Cat, Prec: token.PrecGeneral},
	"--": {Fam: InfixBin, Bin: Del, Prec: token.PrecGeneral},
	"**": {Fam: InfixBin, Bin: Rep, Prec: token.PrecGeneral},
	"//": {Fam: InfixBin, Bin: Spl, Prec: token.PrecGeneral},
}

// NewOp constructs the instruction an Infix entry compiles to.
func (in Infix) NewOp() Opcode {
	if in.Fam == InfixBool {
		return BoolOpCode{Op: in.Bool}
	}
	return BinOpCode{Op: in.Bin}
}
