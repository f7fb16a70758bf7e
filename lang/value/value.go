// Package value defines the tagged sum of runtime values manipulated by the
// virtual machine: scalars, homogeneous vectors and matrices, lists,
// quotations, named programs, macro-ops, symbols, and dictionaries.
package value

import "github.com/stakvm/stak/lang/opcode"

// Value is the interface implemented by every runtime datum. It is a closed
// set: callers should type-switch on the concrete types declared in this
// package rather than add new implementations.
type Value interface {
	// String returns the display form of the value, as written by print.
	String() string
	// Type returns a short, stable name for the value's kind, used in type
	// error messages.
	Type() string

	// sealed prevents types outside this package from implementing Value.
	sealed()
}

// Clone returns a deep copy of v, matching the language's value semantics:
// copying a value deep-copies its payload. Scalars are copied by simply
// returning v since they are immutable once constructed.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Vect:
		return append(Vect(nil), v...)
	case BoolVect:
		return append(BoolVect(nil), v...)
	case StrVect:
		return append(StrVect(nil), v...)
	case *Mat:
		return v.clone()
	case *List:
		return v.clone()
	case Quote:
		return append(Quote(nil), v...)
	case *Program:
		return &Program{Name: v.Name, Body: append([]opcode.Opcode(nil), v.Body...)}
	default:
		// Null, Bool, Int, Num, Str, MacroOp, Sym, *Dict are either immutable
		// scalars or reference types whose identity is the copy (Dict has
		// reference semantics, matching the reference implementation's Map).
		return v
	}
}
