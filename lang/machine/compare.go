package machine

import (
	"reflect"

	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

// dispatchBool implements the BoolOp table (§4.5): ordered comparison on
// Int/Num/Str pairs, short logic on Bool pairs, structural equality on any
// pair.
func (m *Machine) dispatchBool(op opcode.BoolOp, lhs, rhs value.Value) (value.Value, error) {
	switch op {
	case opcode.Eqt:
		return value.Bool(valuesEqual(lhs, rhs)), nil
	case opcode.Neq:
		return value.Bool(!valuesEqual(lhs, rhs)), nil
	case opcode.And:
		return boolLogic(op, lhs, rhs)
	case opcode.Or:
		return boolLogic(op, lhs, rhs)
	default:
		return orderedCompare(op, lhs, rhs)
	}
}

func boolLogic(op opcode.BoolOp, lhs, rhs value.Value) (value.Value, error) {
	l, lok := lhs.(value.Bool)
	r, rok := rhs.(value.Bool)
	if !lok || !rok {
		return nil, typeErrorf("operation %s requires bool operands, got %s and %s", op, lhs.Type(), rhs.Type())
	}
	if op == opcode.And {
		return value.Bool(bool(l) && bool(r)), nil
	}
	return value.Bool(bool(l) || bool(r)), nil
}

func orderedCompare(op opcode.BoolOp, lhs, rhs value.Value) (value.Value, error) {
	switch l := lhs.(type) {
	case value.Int:
		switch r := rhs.(type) {
		case value.Int:
			return boolFromNum(op, float64(l), float64(r))
		case value.Num:
			return boolFromNum(op, float64(l), float64(r))
		}
	case value.Num:
		switch r := rhs.(type) {
		case value.Int:
			return boolFromNum(op, float64(l), float64(r))
		case value.Num:
			return boolFromNum(op, float64(l), float64(r))
		}
	case value.Str:
		if r, ok := rhs.(value.Str); ok {
			return boolFromStr(op, string(l), string(r))
		}
	case value.Vect:
		if r, ok := rhs.(value.Vect); ok {
			return boolVectFromNum(op, l, r)
		}
	}
	return nil, typeErrorf("operation %s cannot be completed on objects of type %s and %s", op, lhs.Type(), rhs.Type())
}

// boolVectFromNum compares two equal-length Vects elementwise, the natural
// source of a BoolVect value (spec.md names BoolVect as a type but defines
// no literal syntax for one; this is how one actually comes to exist).
func boolVectFromNum(op opcode.BoolOp, a, b value.Vect) (value.Value, error) {
	if len(a) != len(b) {
		return nil, domainErrorf("elementwise %s requires equal-length vectors (got %d and %d)", op, len(a), len(b))
	}
	out := make(value.BoolVect, len(a))
	for i := range a {
		r, err := boolFromNum(op, a[i], b[i])
		if err != nil {
			return nil, err
		}
		out[i] = bool(r.(value.Bool))
	}
	return out, nil
}

func boolFromNum(op opcode.BoolOp, a, b float64) (value.Value, error) {
	switch op {
	case opcode.Grt:
		return value.Bool(a > b), nil
	case opcode.Lst:
		return value.Bool(a < b), nil
	case opcode.Gte:
		return value.Bool(a >= b), nil
	case opcode.Lte:
		return value.Bool(a <= b), nil
	default:
		return nil, runtimeErrorf("unhandled comparison %s", op)
	}
}

func boolFromStr(op opcode.BoolOp, a, b string) (value.Value, error) {
	switch op {
	case opcode.Grt:
		return value.Bool(a > b), nil
	case opcode.Lst:
		return value.Bool(a < b), nil
	case opcode.Gte:
		return value.Bool(a >= b), nil
	case opcode.Lte:
		return value.Bool(a <= b), nil
	default:
		return nil, runtimeErrorf("unhandled comparison %s", op)
	}
}

// valuesEqual implements structural equality, promoting Int/Num across each
// other so `1 == 1.0` holds.
func valuesEqual(a, b value.Value) bool {
	switch av := a.(type) {
	case value.Int:
		switch bv := b.(type) {
		case value.Int:
			return av == bv
		case value.Num:
			return float64(av) == float64(bv)
		default:
			return false
		}
	case value.Num:
		switch bv := b.(type) {
		case value.Int:
			return float64(av) == float64(bv)
		case value.Num:
			return av == bv
		default:
			return false
		}
	case value.Vect:
		bv, ok := b.(value.Vect)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case value.StrVect:
		bv, ok := b.(value.StrVect)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case value.BoolVect:
		bv, ok := b.(value.BoolVect)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
