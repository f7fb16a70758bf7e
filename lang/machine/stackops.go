package machine

import (
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

// dispatchStackOp implements the direct stack-manipulation operators
// (§4.5). Each op names its own minimum depth through Stack.popN/Peek, so
// underflow is reported against the specific operator, not a generic pop.
func (m *Machine) dispatchStackOp(op opcode.StackOp) error {
	switch op {
	case opcode.Dup:
		vs, err := m.Stack.popN("dup", 1)
		if err != nil {
			return err
		}
		return m.pushAll(vs[0], vs[0])

	case opcode.Swap:
		vs, err := m.Stack.popN("swap", 2)
		if err != nil {
			return err
		}
		return m.pushAll(vs[1], vs[0])

	case opcode.Dupd:
		vs, err := m.Stack.popN("dupd", 2)
		if err != nil {
			return err
		}
		return m.pushAll(vs[0], vs[0], vs[1])

	case opcode.Swapd:
		vs, err := m.Stack.popN("swapd", 3)
		if err != nil {
			return err
		}
		return m.pushAll(vs[1], vs[0], vs[2])

	case opcode.Flip:
		vs, err := m.Stack.popN("flip", 3)
		if err != nil {
			return err
		}
		return m.pushAll(vs[2], vs[1], vs[0])

	case opcode.Bury:
		// rotate top down two positions: a b c -> c a b
		vs, err := m.Stack.popN("bury", 3)
		if err != nil {
			return err
		}
		return m.pushAll(vs[2], vs[0], vs[1])

	case opcode.Dig:
		// rotate 3rd to top, bury's inverse: a b c -> b c a
		vs, err := m.Stack.popN("dig", 3)
		if err != nil {
			return err
		}
		return m.pushAll(vs[1], vs[2], vs[0])

	case opcode.Over:
		vs, err := m.Stack.popN("over", 2)
		if err != nil {
			return err
		}
		return m.pushAll(vs[0], vs[1], vs[0])

	case opcode.Zap:
		_, err := m.Stack.popN("zap", 1)
		return err

	case opcode.Zapd:
		vs, err := m.Stack.popN("zapd", 2)
		if err != nil {
			return err
		}
		return m.Stack.Push(vs[1])

	case opcode.Clear:
		m.Stack.Clear()
		return nil

	default:
		return runtimeErrorf("unhandled stack op %s", op)
	}
}

func (m *Machine) pushAll(vs ...value.Value) error {
	for _, v := range vs {
		if err := m.Stack.Push(v); err != nil {
			return err
		}
	}
	return nil
}
