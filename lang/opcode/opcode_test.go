package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfixTableOpcode(t *testing.T) {
	cases := []struct {
		sym  string
		want Opcode
	}{
		{"+", BinOpCode{Op: Add}},
		{"==", BoolOpCode{Op: Eqt}},
		{"..", BinOpCode{Op: Seq}},
		{"|", BoolOpCode{Op: Or}},
	}
	for _, c := range cases {
		in, ok := InfixTable[c.sym]
		require.True(t, ok, "missing infix entry for %q", c.sym)
		require.Equal(t, c.want, in.NewOp())
	}
}

func TestSprintQuote(t *testing.T) {
	ops := []Opcode{
		IntOp{N: 1},
		QuoteOp{Body: []Opcode{IntOp{N: 2}, BinOpCode{Op: Add}}},
	}
	got := Sprint(ops)
	require.Contains(t, got, "quote[")
	require.Contains(t, got, "2")
	require.Contains(t, got, "+")
}

func TestStackOpString(t *testing.T) {
	require.Equal(t, "dup", Dup.String())
	require.Equal(t, "bury", Bury.String())
	require.Equal(t, "dig", Dig.String())
}

func TestMathOpString(t *testing.T) {
	for m := Abs; m <= Var; m++ {
		require.NotEmpty(t, m.String(), "missing name for math op %d", m)
	}
}
