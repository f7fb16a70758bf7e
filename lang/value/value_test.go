package value

import (
	"testing"

	"github.com/stakvm/stak/lang/opcode"
	"github.com/stretchr/testify/require"
)

func TestCloneValueSemantics(t *testing.T) {
	v := Vect{1, 2, 3}
	cp := Clone(v).(Vect)
	cp[0] = 99
	require.Equal(t, float64(1), v[0], "cloning a Vect must not alias the original backing array")
}

func TestCloneScalarIdentity(t *testing.T) {
	require.Equal(t, Int(5), Clone(Int(5)))
	require.Equal(t, None, Clone(None))
}

func TestCloneListDeep(t *testing.T) {
	inner := Vect{1, 2}
	l := NewList([]Value{inner, Str("x")})
	cp := Clone(l).(*List)
	cp.Elems[0].(Vect)[0] = 42
	require.Equal(t, float64(1), inner[0])
}

func TestDictGetSet(t *testing.T) {
	d := NewDict(0)
	d.Set("a", Int(1))
	v, ok := d.Get("a")
	require.True(t, ok)
	require.Equal(t, Int(1), v)
	_, ok = d.Get("missing")
	require.False(t, ok)
	require.Equal(t, 1, d.Len())
}

func TestProgramAndMacroOpString(t *testing.T) {
	p := &Program{Name: "square", Body: []opcode.Opcode{opcode.StackOpCode{Op: opcode.Dup}, opcode.BinOpCode{Op: opcode.Mul}}}
	require.Contains(t, p.String(), "square")

	m := MacroOp{Name: "dup", Op: opcode.StackOpCode{Op: opcode.Dup}}
	require.Equal(t, "dup", m.String())
}

func TestBoolString(t *testing.T) {
	require.Equal(t, "true", True.String())
	require.Equal(t, "false", False.String())
}
