package machine

import (
	"math"

	"github.com/stakvm/stak/lang/env"
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

// NewBaseEnv builds the immutable base frame (C8, slot 0 of the
// environment chain): the reserved constants and every built-in word,
// each bound as a MacroOp wrapping the opcode that performs it so lookup
// auto-invokes it exactly like a user-defined Program.
func NewBaseEnv() *env.Frame {
	f := env.NewFrame(nil)
	seedConstants(f)
	seedBinOps(f)
	seedBoolOps(f)
	seedStackOps(f)
	seedMathOps(f)
	seedCombOps(f)
	f.Set("print", value.MacroOp{Name: "print", Op: opcode.UnOpCode{Op: opcode.Print}})
	f.Set("input", value.MacroOp{Name: "input", Op: opcode.AutoOpCode{Op: opcode.Input}})
	return f
}

// NewGlobalEnv builds an empty top-level user dictionary (slot 1).
func NewGlobalEnv() *env.Frame {
	return env.NewFrame(nil)
}

func seedConstants(f *env.Frame) {
	constants := map[string]value.Value{
		"e":     value.Num(math.E),
		"pi":    value.Num(math.Pi),
		"pi2":   value.Num(math.Pi / 2),
		"pi3":   value.Num(math.Pi / 3),
		"pi4":   value.Num(math.Pi / 4),
		"pi6":   value.Num(math.Pi / 6),
		"pi8":   value.Num(math.Pi / 8),
		"tau":   value.Num(math.Pi * 2),
		"NaN":   value.Num(math.NaN()),
		"inf":   value.Num(math.Inf(1)),
		"ln2":   value.Num(math.Ln2),
		"sqrt2": value.Num(math.Sqrt2),
		"true":  value.True,
		"false": value.False,
		"none":  value.None,
	}
	for name, v := range constants {
		f.Set(name, v)
	}
}

func seedBinOps(f *env.Frame) {
	ops := map[string]opcode.BinOp{
		"add": opcode.Add, "sub": opcode.Sub, "mul": opcode.Mul,
		"div": opcode.Div, "pow": opcode.Pow, "mod": opcode.Mod,
	}
	for name, op := range ops {
		f.Set(name, value.MacroOp{Name: name, Op: opcode.BinOpCode{Op: op}})
	}
}

func seedBoolOps(f *env.Frame) {
	ops := map[string]opcode.BoolOp{
		"grt": opcode.Grt, "lst": opcode.Lst, "eq": opcode.Eqt, "neq": opcode.Neq,
		"gte": opcode.Gte, "lte": opcode.Lte, "and": opcode.And, "or": opcode.Or,
	}
	for name, op := range ops {
		f.Set(name, value.MacroOp{Name: name, Op: opcode.BoolOpCode{Op: op}})
	}
}

func seedStackOps(f *env.Frame) {
	ops := map[string]opcode.StackOp{
		"dup": opcode.Dup, "swap": opcode.Swap, "dupd": opcode.Dupd,
		"swapd": opcode.Swapd, "flip": opcode.Flip, "bury": opcode.Bury,
		"dig": opcode.Dig, "over": opcode.Over, "zap": opcode.Zap,
		"zapd": opcode.Zapd, "clear": opcode.Clear,
	}
	for name, op := range ops {
		f.Set(name, value.MacroOp{Name: name, Op: opcode.StackOpCode{Op: op}})
	}
}

func seedMathOps(f *env.Frame) {
	ops := map[string]opcode.MathOp{
		"abs": opcode.Abs, "acos": opcode.Acos, "acosh": opcode.Acosh,
		"asin": opcode.Asin, "asinh": opcode.Asinh, "atan": opcode.Atan,
		"atanh": opcode.Atanh, "cbrt": opcode.Cbrt, "ceil": opcode.Ceil,
		"cos": opcode.Cos, "cosh": opcode.Cosh, "exp": opcode.Exp,
		"floor": opcode.Floor, "fract": opcode.Fract, "ln": opcode.Ln,
		"log10": opcode.Log10, "log2": opcode.Log2, "max": opcode.Max,
		"mean": opcode.Mean, "min": opcode.Min, "neg": opcode.Neg,
		"recip": opcode.Recip, "round0": opcode.Round0, "sd": opcode.Sd,
		"sign": opcode.Sign, "sin": opcode.Sin, "sinh": opcode.Sinh,
		"sqrt": opcode.Sqrt, "tan": opcode.Tan, "tanh": opcode.Tanh,
		"trunc": opcode.Trunc, "var": opcode.Var,
	}
	for name, op := range ops {
		f.Set(name, value.MacroOp{Name: name, Op: opcode.MathOpCode{Op: op}})
	}
}

func seedCombOps(f *env.Frame) {
	ops := map[string]opcode.CombOp{
		"do": opcode.Do, "dip": opcode.Dip, "cleave": opcode.Cleave,
		"ifthen": opcode.Ifthen, "ifelse": opcode.Ifelse,
	}
	for name, op := range ops {
		f.Set(name, value.MacroOp{Name: name, Op: opcode.CombOpCode{Op: op}})
	}
}
