// Package machine implements the stack-oriented virtual machine (C6): the
// operand stack, the environment-chain-aware eval loop, and the opcode
// dispatch table, together with the arithmetic/comparison/math/stack/
// combinator dispatchers (C7) and the seeded base environment (C8).
package machine

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/stakvm/stak/lang/env"
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

// Machine is one interpreter session: an operand stack plus the environment
// chain it reads and writes while evaluating opcodes.
type Machine struct {
	Stack *Stack
	Env   *env.Chain

	Stdout io.Writer
	Stdin  *bufio.Reader

	line uint32
}

// New returns a Machine with a fresh operand stack capped at
// maxStackDepth (<= 0 falls back to MaxStackDepth), running against chain
// (the caller seeds chain's base frame via NewBaseEnv).
func New(chain *env.Chain, stdout io.Writer, stdin io.Reader, maxStackDepth int) *Machine {
	return &Machine{
		Stack:  NewStack(maxStackDepth),
		Env:    chain,
		Stdout: stdout,
		Stdin:  bufio.NewReader(stdin),
	}
}

// Line reports the source line the AddLine layout opcodes have advanced to,
// for error messages.
func (m *Machine) Line() uint32 { return m.line }

// Run evaluates one compiled statement (one REPL line, or one line of a
// script) directly against the chain's current top frame: unlike a
// Program or Quote call, a top-level statement does not introduce its own
// scope, so `x = 1` at top level binds into the global frame rather than
// a frame that disappears the instant the statement finishes.
func (m *Machine) Run(ops []opcode.Opcode) error {
	return m.eval(env.NewFrame(ops))
}

// runOpcodes pushes a new frame owning ops, evaluates it to completion, and
// pops the frame whether or not it errored — environments are always
// released in LIFO order. Used for Program/Quote calls, which do get their
// own scope and count against the chain's depth limit.
func (m *Machine) runOpcodes(ops []opcode.Opcode) error {
	frame := env.NewFrame(ops)
	if err := m.Env.Push(frame); err != nil {
		return err
	}
	err := m.eval(frame)
	if perr := m.Env.Pop(); perr != nil && err == nil {
		err = perr
	}
	return err
}

// runNewstack evaluates ops against a fresh operand stack, restores the
// caller's stack afterward, and returns the sub-stack's final contents.
// Used by math reductions over a quotation (§4.5 Math).
func (m *Machine) runNewstack(ops []opcode.Opcode) ([]value.Value, error) {
	saved := m.Stack
	m.Stack = NewStack(saved.maxDepth)
	err := m.runOpcodes(ops)
	sub := m.Stack
	m.Stack = saved
	if err != nil {
		return nil, err
	}
	return sub.Snapshot(), nil
}

func (m *Machine) eval(frame *env.Frame) error {
	for !frame.Done() {
		if err := m.dispatch(frame.Next()); err != nil {
			return err
		}
	}
	return nil
}

// dispatch executes a single opcode against the current stack/environment.
func (m *Machine) dispatch(op opcode.Opcode) error {
	switch op := op.(type) {
	case opcode.IntOp:
		return m.Stack.Push(value.Int(op.N))
	case opcode.ConstOp:
		return m.Stack.Push(constValue(op.Kind))
	case opcode.NumOp:
		return m.Stack.Push(value.Num(op.N))
	case opcode.StrOp:
		return m.Stack.Push(value.Str(op.S))
	case opcode.SymOp:
		return m.evalSym(op.Name)
	case opcode.QuoteOp:
		return m.Stack.Push(value.Quote(append([]opcode.Opcode(nil), op.Body...)))
	case opcode.ProgOp:
		return m.runOpcodes(op.Body)

	case opcode.BinOpCode:
		rhs, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		lhs, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		result, err := m.dispatchBin(op.Op, lhs, rhs)
		if err != nil {
			return err
		}
		return m.Stack.Push(result)

	case opcode.BoolOpCode:
		rhs, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		lhs, err := m.Stack.Peek(0)
		if err != nil {
			return err
		}
		result, err := m.dispatchBool(op.Op, lhs, rhs)
		if err != nil {
			return err
		}
		return m.Stack.Push(result)

	case opcode.UnOpCode:
		return m.dispatchUnary(op.Op)

	case opcode.MathOpCode:
		arg, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		result, err := m.dispatchMath(op.Op, arg)
		if err != nil {
			return err
		}
		return m.Stack.Push(result)

	case opcode.StackOpCode:
		return m.dispatchStackOp(op.Op)

	case opcode.AutoOpCode:
		return m.dispatchAuto(op.Op)

	case opcode.CombOpCode:
		return m.dispatchComb(op.Op)

	case opcode.SetOp:
		v, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		m.Env.Assign(op.Name, v)
		return nil

	case opcode.SetProgOp:
		v, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		if q, ok := v.(value.Quote); ok {
			m.Env.Assign(op.Name, &value.Program{Name: op.Name, Body: append([]opcode.Opcode(nil), q...)})
		} else {
			m.Env.Assign(op.Name, v)
		}
		return nil

	case opcode.AddLineOp:
		m.line += op.N
		return nil

	case opcode.BlankOp:
		return nil

	default:
		return runtimeErrorf("unhandled opcode %T", op)
	}
}

func constValue(k opcode.ConstKind) value.Value {
	switch k {
	case opcode.ConstTrue:
		return value.True
	case opcode.ConstFalse:
		return value.False
	default:
		return value.None
	}
}

// evalSym looks a name up in the environment chain and applies run-word
// semantics: a missing binding is a LookupError, a Program or MacroOp
// auto-invokes, anything else is pushed.
func (m *Machine) evalSym(name string) error {
	v, ok := m.Env.Lookup(name)
	if !ok {
		return lookupErrorf("undefined name %q", name)
	}
	return m.runWord(v)
}

// execWord runs v as code: Program and Quote both execute their opcode
// body, MacroOp dispatches its single opcode, anything else is pushed as
// data. Used by combinators, which hold an explicit callable value rather
// than resolving one by name.
func (m *Machine) execWord(v value.Value) error {
	switch v := v.(type) {
	case value.Quote:
		return m.runOpcodes(append([]opcode.Opcode(nil), v...))
	case *value.Program:
		return m.runOpcodes(append([]opcode.Opcode(nil), v.Body...))
	case value.MacroOp:
		return m.dispatch(v.Op)
	default:
		return m.Stack.Push(v)
	}
}

// runWord is execWord's name-resolution counterpart: a Quote is pushed as
// data rather than executed, since a Quote only runs under an explicit
// combinator or `do`.
func (m *Machine) runWord(v value.Value) error {
	switch v := v.(type) {
	case *value.Program:
		return m.runOpcodes(append([]opcode.Opcode(nil), v.Body...))
	case value.MacroOp:
		return m.dispatch(v.Op)
	default:
		return m.Stack.Push(v)
	}
}

func (m *Machine) dispatchUnary(op opcode.UnOp) error {
	switch op {
	case opcode.Print:
		v, err := m.Stack.Pop()
		if err != nil {
			return err
		}
		text := v.String()
		if s, ok := v.(value.Str); ok {
			text = string(s)
		}
		if _, err := fmt.Fprintln(m.Stdout, text); err != nil {
			return runtimeErrorf("print: %s", err)
		}
		if f, ok := m.Stdout.(interface{ Flush() error }); ok {
			return f.Flush()
		}
		return nil
	default:
		return runtimeErrorf("unhandled unary op %s", op)
	}
}

func (m *Machine) dispatchAuto(op opcode.AutoOp) error {
	switch op {
	case opcode.Input:
		line, err := m.Stdin.ReadString('\n')
		if err != nil && err != io.EOF {
			return runtimeErrorf("input: %s", err)
		}
		line = strings.TrimRight(line, "\r\n")
		return m.Stack.Push(value.Str(line))
	default:
		return runtimeErrorf("unhandled auto op %s", op)
	}
}
