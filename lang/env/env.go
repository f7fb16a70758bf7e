// Package env implements the environment chain (C5): a fixed-capacity
// ordered stack of frames, each holding a name→value mapping plus an owned
// opcode list and instruction pointer, with top-down shadowing lookup.
package env

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
	"golang.org/x/exp/slices"
)

// MaxDepth is the maximum number of frames the chain may hold at once.
const MaxDepth = 16

// BaseSlot and GlobalSlot name the two permanent, non-poppable frames: the
// immutable built-in base and the top-level user dictionary.
const (
	BaseSlot   = 0
	GlobalSlot = 1
	minSlots   = GlobalSlot + 1
)

// Frame is one layer of the environment chain.
type Frame struct {
	vars *swiss.Map[string, value.Value]
	Ops  []opcode.Opcode
	IP   int
}

// NewFrame returns an empty frame ready to run ops (ops may be nil for a
// frame that only holds bindings, such as the base and global frames).
func NewFrame(ops []opcode.Opcode) *Frame {
	return &Frame{vars: swiss.NewMap[string, value.Value](0), Ops: ops}
}

// Get returns the value bound to name in this frame only (no chain walk).
func (f *Frame) Get(name string) (value.Value, bool) { return f.vars.Get(name) }

// Set binds name to v in this frame.
func (f *Frame) Set(name string, v value.Value) { f.vars.Put(name, v) }

// Done reports whether the frame's instruction pointer has consumed all of
// Ops.
func (f *Frame) Done() bool { return f.IP >= len(f.Ops) }

// Next returns the next opcode and advances the instruction pointer. It
// must not be called when Done() is true.
func (f *Frame) Next() opcode.Opcode {
	op := f.Ops[f.IP]
	f.IP++
	return op
}

// Chain is the environment stack. Slot 0 (base) and slot 1 (global) are
// seeded once by the caller and never removed by Pop.
type Chain struct {
	frames   []*Frame
	maxDepth int
}

// NewChain builds a chain seeded with base (slot 0, the immutable built-in
// environment) and global (slot 1, the top-level user dictionary). maxDepth
// caps the number of frames Push will allow; a value <= 0 falls back to
// MaxDepth, the package's historical default.
func NewChain(base, global *Frame, maxDepth int) *Chain {
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	return &Chain{frames: []*Frame{base, global}, maxDepth: maxDepth}
}

// Depth returns the number of frames currently on the chain.
func (c *Chain) Depth() int { return len(c.frames) }

// Push adds a new transient frame on top of the chain, failing with a plain
// "overflow: ..." error (not a machine.Error) if that would exceed the
// chain's configured depth.
func (c *Chain) Push(f *Frame) error {
	if len(c.frames) >= c.maxDepth {
		return fmt.Errorf("overflow: environment chain depth exceeds %d", c.maxDepth)
	}
	c.frames = append(c.frames, f)
	return nil
}

// Pop removes the top frame, refusing to pop below slot 1 (the base and
// global frames are permanent).
func (c *Chain) Pop() error {
	if len(c.frames) <= minSlots {
		return fmt.Errorf("runtime error: cannot pop base or global environment frame")
	}
	c.frames = slices.Delete(c.frames, len(c.frames)-1, len(c.frames))
	return nil
}

// Top returns the current (topmost) frame.
func (c *Chain) Top() *Frame { return c.frames[len(c.frames)-1] }

// Global returns the slot-1 frame (the top-level user dictionary), used as
// the assignment target for top-level REPL compilation output.
func (c *Chain) Global() *Frame { return c.frames[GlobalSlot] }

// Base returns the slot-0 frame (the immutable built-in base).
func (c *Chain) Base() *Frame { return c.frames[BaseSlot] }

// Lookup walks the chain top-to-bottom and returns the first binding found.
func (c *Chain) Lookup(name string) (value.Value, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if v, ok := c.frames[i].Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign binds name to v in the current (topmost) frame.
func (c *Chain) Assign(name string, v value.Value) {
	c.Top().Set(name, v)
}
