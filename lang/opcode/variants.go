package opcode

import "fmt"

// IntOp is an integer literal.
type IntOp struct{ N int32 }

func (IntOp) sealed()            {}
func (o IntOp) String() string   { return fmt.Sprintf("%d", o.N) }

// ConstKind identifies a nullary constant.
type ConstKind uint8

//nolint:revive
const (
	ConstTrue ConstKind = iota
	ConstFalse
	ConstNull
)

func (k ConstKind) String() string { return constKindNames[k] }

var constKindNames = [...]string{
	ConstTrue: "true", ConstFalse: "false", ConstNull: "none",
}

// ConstOp is a nullary constant (true/false/none).
type ConstOp struct{ Kind ConstKind }

func (ConstOp) sealed()          {}
func (o ConstOp) String() string { return o.Kind.String() }

// NumOp is a floating-point literal.
type NumOp struct{ N float64 }

func (NumOp) sealed()          {}
func (o NumOp) String() string { return fmt.Sprintf("%g", o.N) }

// StrOp is a string literal.
type StrOp struct{ S string }

func (StrOp) sealed()          {}
func (o StrOp) String() string { return fmt.Sprintf("%q", o.S) }

// SymOp is a name reference, resolved against the environment chain at
// dispatch time.
type SymOp struct{ Name string }

func (SymOp) sealed()          {}
func (o SymOp) String() string { return o.Name }

// QuoteOp boxes an opcode sequence as an inert value; it does not run until
// an explicit combinator or `do` invokes it.
type QuoteOp struct{ Body []Opcode }

func (QuoteOp) sealed()          {}
func (o QuoteOp) String() string { return fmt.Sprintf("[%s]", joinOps(o.Body)) }

// ProgOp runs its embedded opcodes immediately in a child frame. The compiler
// does not emit it: a parenthesised group is spliced inline, and `:=` binds
// a QuoteOp body through SetProgOp.
type ProgOp struct{ Body []Opcode }

func (ProgOp) sealed()          {}
func (o ProgOp) String() string { return fmt.Sprintf("(%s)", joinOps(o.Body)) }

// BinOpCode applies a BinOp to the top two operands.
type BinOpCode struct{ Op BinOp }

func (BinOpCode) sealed()          {}
func (o BinOpCode) String() string { return o.Op.String() }

// BoolOpCode applies a BoolOp to the top two operands.
type BoolOpCode struct{ Op BoolOp }

func (BoolOpCode) sealed()          {}
func (o BoolOpCode) String() string { return o.Op.String() }

// StackOpCode applies a StackOp directly.
type StackOpCode struct{ Op StackOp }

func (StackOpCode) sealed()          {}
func (o StackOpCode) String() string { return o.Op.String() }

// MathOpCode applies a MathOp to the top operand.
type MathOpCode struct{ Op MathOp }

func (MathOpCode) sealed()          {}
func (o MathOpCode) String() string { return o.Op.String() }

// UnOpCode applies a UnOp to the top operand.
type UnOpCode struct{ Op UnOp }

func (UnOpCode) sealed()          {}
func (o UnOpCode) String() string { return o.Op.String() }

// AutoOpCode applies an AutoOp (no operands consumed, one produced).
type AutoOpCode struct{ Op AutoOp }

func (AutoOpCode) sealed()          {}
func (o AutoOpCode) String() string { return o.Op.String() }

// CombOpCode invokes a combinator, popping as many callables as its CombOp
// arity requires.
type CombOpCode struct{ Op CombOp }

func (CombOpCode) sealed()          {}
func (o CombOpCode) String() string { return o.Op.String() }

// SetOp pops one value and binds it under Name in the current frame.
type SetOp struct{ Name string }

func (SetOp) sealed()          {}
func (o SetOp) String() string { return o.Name + " =" }

// SetProgOp pops one value; if it is a Quote, rebinds it as an
// auto-invoked Program under Name.
type SetProgOp struct{ Name string }

func (SetProgOp) sealed()          {}
func (o SetProgOp) String() string { return o.Name + " :=" }

// AddLineOp is a layout-only opcode: it advances the line counter used for
// error reporting and has no stack effect.
type AddLineOp struct {
	N   uint32
	Dir NewLineDir
}

func (AddLineOp) sealed()          {}
func (o AddLineOp) String() string { return fmt.Sprintf("addline(%d)", o.N) }

// BlankOp is a no-op sentinel. The compiler does not emit it; an empty
// statement compiles to an empty opcode list.
type BlankOp struct{}

func (BlankOp) sealed()          {}
func (BlankOp) String() string   { return "blank" }

func joinOps(ops []Opcode) string {
	var b []byte
	for i, op := range ops {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, op.String()...)
	}
	return string(b)
}
