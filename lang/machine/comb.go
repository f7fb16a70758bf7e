package machine

import (
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

// dispatchComb implements the combinators (§4.5): do, dip, cleave, ifthen,
// ifelse. Each pops its callables by arity and runs them with execWord, the
// call semantics used whenever the machine holds a callable value directly
// rather than resolving one by name.
func (m *Machine) dispatchComb(op opcode.CombOp) error {
	switch op {
	case opcode.Do:
		callable, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		return m.execWord(callable)

	case opcode.Dip:
		callable, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		x, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		if err := m.execWord(callable); err != nil {
			return err
		}
		return m.Stack.Push(x)

	case opcode.Cleave:
		q, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		p, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		x, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		if err := m.Stack.Push(x); err != nil {
			return err
		}
		if err := m.execWord(p); err != nil {
			return err
		}
		if err := m.Stack.Push(x); err != nil {
			return err
		}
		return m.execWord(q)

	case opcode.Ifthen:
		thenQ, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		cond, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		ok, err := m.resolveCond(cond)
		if err != nil {
			return err
		}
		if ok {
			return m.execWord(thenQ)
		}
		return nil

	case opcode.Ifelse:
		elseQ, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		thenQ, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		cond, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		ok, err := m.resolveCond(cond)
		if err != nil {
			return err
		}
		if ok {
			return m.execWord(thenQ)
		}
		return m.execWord(elseQ)

	default:
		return runtimeErrorf("unhandled combinator %s", op)
	}
}

// resolveCond accepts a plain Bool, or a callable (Quote/Program/MacroOp)
// that it runs on the live operand stack — not an isolated one, matching
// the reference's run_opcodes call for a conditional's condition — and
// whose result it pops and requires to be a Bool.
func (m *Machine) resolveCond(v value.Value) (bool, error) {
	switch v := v.(type) {
	case value.Bool:
		return bool(v), nil
	case value.Quote, *value.Program, value.MacroOp:
		if err := m.execWord(v); err != nil {
			return false, err
		}
		result, err := m.Stack.Pop()
		if err != nil {
			return false, err
		}
		b, ok := result.(value.Bool)
		if !ok {
			return false, typeErrorf("condition must evaluate to bool, got %s", result.Type())
		}
		return bool(b), nil
	default:
		return false, typeErrorf("condition must be bool or a callable producing bool, got %s", v.Type())
	}
}
