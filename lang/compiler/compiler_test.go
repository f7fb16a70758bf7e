package compiler_test

import (
	"testing"

	"github.com/stakvm/stak/lang/compiler"
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stretchr/testify/require"
)

func compileOne(t *testing.T, src string) []opcode.Opcode {
	t.Helper()
	stmts, err := compiler.Compile(src, false, "test")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func TestCompileInfixArithmetic(t *testing.T) {
	got := compileOne(t, "1 + 2")
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 1},
		opcode.IntOp{N: 2},
		opcode.BinOpCode{Op: opcode.Add},
	}, got)
}

func TestCompilePrecedenceClimbing(t *testing.T) {
	got := compileOne(t, "1 + 2 * 3")
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 1},
		opcode.IntOp{N: 2},
		opcode.IntOp{N: 3},
		opcode.BinOpCode{Op: opcode.Mul},
		opcode.BinOpCode{Op: opcode.Add},
	}, got)
}

func TestCompileConcatenativeWords(t *testing.T) {
	got := compileOne(t, "5 dup mul")
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 5},
		opcode.SymOp{Name: "dup"},
		opcode.SymOp{Name: "mul"},
	}, got)
}

func TestCompileQuote(t *testing.T) {
	got := compileOne(t, "[1 2 + ]")
	require.Equal(t, []opcode.Opcode{
		opcode.QuoteOp{Body: []opcode.Opcode{
			opcode.IntOp{N: 1},
			opcode.IntOp{N: 2},
			opcode.BinOpCode{Op: opcode.Add},
		}},
	}, got)
}

func TestCompileGroup(t *testing.T) {
	got := compileOne(t, "(1 2 + ) 3 mul")
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 1},
		opcode.IntOp{N: 2},
		opcode.BinOpCode{Op: opcode.Add},
		opcode.IntOp{N: 3},
		opcode.SymOp{Name: "mul"},
	}, got)
}

func TestCompileCall(t *testing.T) {
	got := compileOne(t, "dup(1, 2)")
	require.Equal(t, []opcode.Opcode{
		opcode.QuoteOp{Body: []opcode.Opcode{opcode.IntOp{N: 1}}},
		opcode.QuoteOp{Body: []opcode.Opcode{opcode.IntOp{N: 2}}},
		opcode.SymOp{Name: "dup"},
	}, got)
}

func TestCompileAssign(t *testing.T) {
	got := compileOne(t, "x = 1")
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 1},
		opcode.SetOp{Name: "x"},
	}, got)
}

func TestCompileAssignProg(t *testing.T) {
	got := compileOne(t, "sq := dup mul")
	require.Equal(t, []opcode.Opcode{
		opcode.QuoteOp{Body: []opcode.Opcode{
			opcode.SymOp{Name: "dup"},
			opcode.SymOp{Name: "mul"},
		}},
		opcode.SetProgOp{Name: "sq"},
	}, got)
}

func TestCompileUnaryNegation(t *testing.T) {
	require.Equal(t, []opcode.Opcode{opcode.IntOp{N: -5}}, compileOne(t, "-5"))
	require.Equal(t, []opcode.Opcode{opcode.ConstOp{Kind: opcode.ConstFalse}}, compileOne(t, "-true"))
	require.Equal(t, []opcode.Opcode{
		opcode.SymOp{Name: "x"},
		opcode.MathOpCode{Op: opcode.Neg},
	}, compileOne(t, "-x"))
}

func TestCompileLeadingInfixSection(t *testing.T) {
	got := compileOne(t, "+ 1")
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 1},
		opcode.BinOpCode{Op: opcode.Add},
	}, got)
}

func TestCompileMultipleStatements(t *testing.T) {
	stmts, err := compiler.Compile("1 2 +\n3 4 +", false, "test")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 1}, opcode.IntOp{N: 2}, opcode.BinOpCode{Op: opcode.Add},
	}, stmts[0])
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 3}, opcode.IntOp{N: 4}, opcode.BinOpCode{Op: opcode.Add},
	}, stmts[1])
}

func TestCompileUnexpectedTokenIsParseError(t *testing.T) {
	_, err := compiler.Compile(")", false, "test")
	require.Error(t, err)
	var parseErr *compiler.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCompileRangeOperator(t *testing.T) {
	got := compileOne(t, "1..5")
	require.Equal(t, []opcode.Opcode{
		opcode.IntOp{N: 1},
		opcode.IntOp{N: 5},
		opcode.BinOpCode{Op: opcode.Seq},
	}, got)
}
