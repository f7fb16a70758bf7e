// Package opcode defines the tagged sum of VM instructions produced by the
// compiler and consumed by the machine's eval loop, along with the infix
// operator precedence table used by both the lexer and the compiler.
package opcode

// Opcode is the interface implemented by every instruction kind. It is a
// closed set: the machine package type-switches on the concrete types
// declared here.
type Opcode interface {
	String() string

	sealed()
}

// BinOp identifies an arithmetic infix operator.
type BinOp uint8

//nolint:revive
const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Seq // a..b
	Cat // ++
	Del // --
	Rep // **
	Spl // //
)

func (b BinOp) String() string { return binOpNames[b] }

var binOpNames = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Pow: "^",
	Seq: "..", Cat: "++", Del: "--", Rep: "**", Spl: "//",
}

// BoolOp identifies a comparison or short logical operator.
type BoolOp uint8

//nolint:revive
const (
	Grt BoolOp = iota
	Lst
	Gte
	Lte
	Eqt
	Neq
	And
	Or
)

func (b BoolOp) String() string { return boolOpNames[b] }

var boolOpNames = [...]string{
	Grt: ">", Lst: "<", Gte: ">=", Lte: "<=", Eqt: "==", Neq: "!=",
	And: "&", Or: "|",
}

// StackOp identifies a direct stack-manipulation operator.
type StackOp uint8

//nolint:revive
const (
	Dup StackOp = iota
	Swap
	Dupd
	Swapd
	Flip
	Bury
	Dig
	Over
	Zap
	Zapd
	Clear
)

func (s StackOp) String() string { return stackOpNames[s] }

var stackOpNames = [...]string{
	Dup: "dup", Swap: "swap", Dupd: "dupd", Swapd: "swapd", Flip: "flip",
	Bury: "bury", Dig: "dig", Over: "over", Zap: "zap", Zapd: "zapd",
	Clear: "clear",
}

// MathOp identifies a unary math function.
type MathOp uint8

//nolint:revive
const (
	Abs MathOp = iota
	Acos
	Acosh
	Asin
	Asinh
	Atan
	Atanh
	Cbrt
	Ceil
	Cos
	Cosh
	Exp
	Floor
	Fract
	Ln
	Log10
	Log2
	Max
	Mean
	Min
	Neg
	Recip
	Round0
	Sd
	Sign
	Sin
	Sinh
	Sqrt
	Tan
	Tanh
	Trunc
	Var
)

func (m MathOp) String() string { return mathOpNames[m] }

var mathOpNames = [...]string{
	Abs: "abs", Acos: "acos", Acosh: "acosh", Asin: "asin", Asinh: "asinh",
	Atan: "atan", Atanh: "atanh", Cbrt: "cbrt", Ceil: "ceil", Cos: "cos",
	Cosh: "cosh", Exp: "exp", Floor: "floor", Fract: "fract", Ln: "ln",
	Log10: "log10", Log2: "log2", Max: "max", Mean: "mean", Min: "min",
	Neg: "neg", Recip: "recip", Round0: "round0", Sd: "sd", Sign: "sign",
	Sin: "sin", Sinh: "sinh", Sqrt: "sqrt", Tan: "tan", Tanh: "tanh",
	Trunc: "trunc", Var: "var",
}

// UnOp identifies a unary effect operator (no arithmetic result, a side
// effect or a stack-shape change driven by an arbitrary callable).
type UnOp uint8

//nolint:revive
const (
	Print UnOp = iota
)

func (u UnOp) String() string { return unOpNames[u] }

var unOpNames = [...]string{Print: "print"}

// AutoOp identifies a zero-argument builtin with an I/O side effect.
type AutoOp uint8

//nolint:revive
const (
	Input AutoOp = iota
)

func (a AutoOp) String() string { return autoOpNames[a] }

var autoOpNames = [...]string{Input: "input"}

// CombOp identifies a combinator, distinguished by its callable arity.
type CombOp uint8

//nolint:revive
const (
	Do CombOp = iota // 1-arg
	Dip
	Cleave // 2-arg
	Ifthen
	Ifelse // 3-arg
)

func (c CombOp) String() string { return combOpNames[c] }

var combOpNames = [...]string{
	Do: "do", Dip: "dip", Cleave: "cleave", Ifthen: "ifthen", Ifelse: "ifelse",
}

// NewLineDir indicates whether an AddLine layout opcode was emitted before
// or after its neighbour in source order.
type NewLineDir uint8

//nolint:revive
const (
	Left NewLineDir = iota
	Right
)
