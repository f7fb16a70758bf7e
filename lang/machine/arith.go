package machine

import (
	"math"
	"strconv"
	"strings"

	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

// dispatchBin implements the BinOp arithmetic table (§4.5): a two-level
// type dispatch on (lhs, rhs).
func (m *Machine) dispatchBin(op opcode.BinOp, lhs, rhs value.Value) (value.Value, error) {
	// BoolVect has no arithmetic of its own: coerce to 0/1 and fall through
	// to the Vect table, per spec's "mixing bool-vector with num-vector
	// first coerces booleans to 0/1".
	if bv, ok := lhs.(value.BoolVect); ok {
		lhs = boolVectToVect(bv)
	}
	if bv, ok := rhs.(value.BoolVect); ok {
		rhs = boolVectToVect(bv)
	}

	switch l := lhs.(type) {
	case value.Int:
		return binFromInt(op, l, rhs)
	case value.Num:
		return binFromNum(op, l, rhs)
	case value.Str:
		return binFromStr(op, l, rhs)
	case value.Vect:
		return binFromVect(op, l, rhs)
	case *value.Mat:
		return binFromMat(op, l, rhs)
	case value.StrVect:
		return binFromStrVect(op, l, rhs)
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type %s", op, lhs.Type())
	}
}

func boolVectToVect(bv value.BoolVect) value.Vect {
	v := make(value.Vect, len(bv))
	for i, b := range bv {
		if b {
			v[i] = 1
		}
	}
	return v
}

func binFromInt(op opcode.BinOp, l value.Int, rhs value.Value) (value.Value, error) {
	switch r := rhs.(type) {
	case value.Int:
		return intArith(op, int32(l), int32(r))
	case value.Num:
		return numArith(op, float64(l), float64(r))
	case value.Str:
		return strIntOp(op, string(r), int32(l), false)
	case value.Vect:
		return scalarVecOp(op, float64(l), r)
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type int and %s", op, rhs.Type())
	}
}

func binFromNum(op opcode.BinOp, l value.Num, rhs value.Value) (value.Value, error) {
	switch r := rhs.(type) {
	case value.Int:
		return numArith(op, float64(l), float64(r))
	case value.Num:
		return numArith(op, float64(l), float64(r))
	case value.Str:
		return strNumOp(op, string(r), float64(l), false)
	case value.Vect:
		return scalarVecOp(op, float64(l), r)
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type num and %s", op, rhs.Type())
	}
}

func binFromStr(op opcode.BinOp, l value.Str, rhs value.Value) (value.Value, error) {
	switch r := rhs.(type) {
	case value.Int:
		return strIntOp(op, string(l), int32(r), true)
	case value.Num:
		return strNumOp(op, string(l), float64(r), true)
	case value.Str:
		return strStrOp(op, string(l), string(r))
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type str and %s", op, rhs.Type())
	}
}

func binFromVect(op opcode.BinOp, l value.Vect, rhs value.Value) (value.Value, error) {
	switch r := rhs.(type) {
	case value.Int:
		return vecScalarOp(op, l, float64(r))
	case value.Num:
		return vecScalarOp(op, l, float64(r))
	case value.Vect:
		return vecElemOp(op, l, r)
	case value.StrVect:
		if op != opcode.Add {
			return nil, typeErrorf("operation %s cannot be completed on objects of type vect and strvect", op)
		}
		return broadcastFormatConcat(l, r, true), nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type vect and %s", op, rhs.Type())
	}
}

// binFromStrVect covers a StrVect as the left operand: only Add (string
// first, then the formatted number) against a numeric vector is defined.
// BoolVect operands were already coerced to Vect by dispatchBin.
func binFromStrVect(op opcode.BinOp, l value.StrVect, rhs value.Value) (value.Value, error) {
	v, ok := rhs.(value.Vect)
	if !ok || op != opcode.Add {
		return nil, typeErrorf("operation %s cannot be completed on objects of type strvect and %s", op, rhs.Type())
	}
	return broadcastFormatConcat(v, l, false), nil
}

// broadcastFormatConcat pairs nums and strs elementwise, cycling whichever
// side is shorter, formatting each number and concatenating it with its
// paired string. numFirst controls concatenation order (numeric-vector-first
// vs. string-vector-first), matching the scalar Str+Num/Num+Str convention.
func broadcastFormatConcat(nums value.Vect, strs value.StrVect, numFirst bool) value.StrVect {
	n := len(nums)
	if len(strs) > n {
		n = len(strs)
	}
	out := make(value.StrVect, n)
	for i := 0; i < n; i++ {
		numStr := strconv.FormatFloat(nums[i%len(nums)], 'g', -1, 64)
		s := strs[i%len(strs)]
		if numFirst {
			out[i] = numStr + s
		} else {
			out[i] = s + numStr
		}
	}
	return out
}

// binFromMat covers Mat as the left operand: elementwise arithmetic against
// a shape-compatible Mat, or scalar broadcast against Int/Num.
func binFromMat(op opcode.BinOp, l *value.Mat, rhs value.Value) (value.Value, error) {
	switch r := rhs.(type) {
	case value.Int:
		return matScalarOp(op, l, float64(r))
	case value.Num:
		return matScalarOp(op, l, float64(r))
	case *value.Mat:
		return matElemOp(op, l, r)
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type mat and %s", op, rhs.Type())
	}
}

func matScalarOp(op opcode.BinOp, m *value.Mat, s float64) (value.Value, error) {
	if !vecArithOps[op] {
		return nil, typeErrorf("operation %s cannot be completed on objects of type mat", op)
	}
	out := make([]float64, len(m.Data))
	for i, x := range m.Data {
		r, err := numArith(op, x, s)
		if err != nil {
			return nil, err
		}
		out[i] = float64(r.(value.Num))
	}
	return value.NewMat(m.Rows, m.Cols, out), nil
}

func matElemOp(op opcode.BinOp, a, b *value.Mat) (value.Value, error) {
	if !vecArithOps[op] {
		return nil, typeErrorf("operation %s cannot be completed on objects of type mat", op)
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return nil, domainErrorf("elementwise %s requires matching shapes (got %dx%d and %dx%d)", op, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := make([]float64, len(a.Data))
	for i := range a.Data {
		r, err := numArith(op, a.Data[i], b.Data[i])
		if err != nil {
			return nil, err
		}
		out[i] = float64(r.(value.Num))
	}
	return value.NewMat(a.Rows, a.Cols, out), nil
}

// intArith holds the Int-Int arithmetic table; Div always promotes to Num.
func intArith(op opcode.BinOp, a, b int32) (value.Value, error) {
	switch op {
	case opcode.Add:
		return value.Int(a + b), nil
	case opcode.Sub:
		return value.Int(a - b), nil
	case opcode.Mul:
		return value.Int(a * b), nil
	case opcode.Div:
		if b == 0 {
			return nil, domainErrorf("division by zero")
		}
		return value.Num(float64(a) / float64(b)), nil
	case opcode.Mod:
		if b == 0 {
			return nil, domainErrorf("modulo by zero")
		}
		return value.Int(a % b), nil
	case opcode.Pow:
		return value.Num(math.Pow(float64(a), float64(b))), nil
	case opcode.Seq:
		return intRange(a, b), nil
	case opcode.Cat:
		return value.Vect{float64(a), float64(b)}, nil
	case opcode.Rep:
		if b < 0 {
			return nil, domainErrorf("repetition count must be >= 0, got %d", b)
		}
		v := make(value.Vect, b)
		for i := range v {
			v[i] = float64(a)
		}
		return v, nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type int", op)
	}
}

func intRange(a, b int32) value.Value {
	n := int(math.Abs(float64(a-b))) + 1
	step := 1.0
	if b < a {
		step = -1.0
	}
	v := make(value.Vect, n)
	cur := float64(a)
	for i := 0; i < n; i++ {
		v[i] = cur
		cur += step
	}
	return v
}

// numArith holds the Num-Num arithmetic table (also used for Int-Num after
// the caller has promoted the Int operand).
func numArith(op opcode.BinOp, a, b float64) (value.Value, error) {
	switch op {
	case opcode.Add:
		return value.Num(a + b), nil
	case opcode.Sub:
		return value.Num(a - b), nil
	case opcode.Mul:
		return value.Num(a * b), nil
	case opcode.Div:
		return value.Num(a / b), nil
	case opcode.Mod:
		return value.Num(math.Mod(a, b)), nil
	case opcode.Pow:
		return value.Num(math.Pow(a, b)), nil
	case opcode.Seq:
		return numRange(a, b), nil
	case opcode.Cat:
		return value.Vect{a, b}, nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type num", op)
	}
}

func numRange(a, b float64) value.Value {
	n := int(math.Abs(math.Trunc(a-b))) + 1
	step := 1.0
	if b < a {
		step = -1.0
	}
	v := make(value.Vect, n)
	cur := a
	for i := 0; i < n; i++ {
		v[i] = cur
		cur += step
	}
	return v
}

// strIntOp covers the Str-Int family: concatenation (order-preserving) and
// repetition. strFirst reports whether the Str operand was the left side of
// the original expression.
func strIntOp(op opcode.BinOp, s string, n int32, strFirst bool) (value.Value, error) {
	switch op {
	case opcode.Add:
		rep := strconv.FormatInt(int64(n), 10)
		if strFirst {
			return value.Str(s + rep), nil
		}
		return value.Str(rep + s), nil
	case opcode.Mul:
		if n < 0 {
			return nil, domainErrorf("repetition count must be >= 0, got %d", n)
		}
		return value.Str(strings.Repeat(s, int(n))), nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type str and int", op)
	}
}

// strNumOp covers the Str-Num family: order-preserving concatenation only.
func strNumOp(op opcode.BinOp, s string, n float64, strFirst bool) (value.Value, error) {
	switch op {
	case opcode.Add:
		rep := strconv.FormatFloat(n, 'g', -1, 64)
		if strFirst {
			return value.Str(s + rep), nil
		}
		return value.Str(rep + s), nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type str and num", op)
	}
}

// strStrOp covers the Str-Str family (§4.5 String operations).
func strStrOp(op opcode.BinOp, a, b string) (value.Value, error) {
	switch op {
	case opcode.Add:
		return value.Str(a + b), nil
	case opcode.Sub:
		return value.Str(strings.ReplaceAll(a, b, "")), nil
	case opcode.Spl:
		return value.StrVect(strings.Split(a, b)), nil
	case opcode.Del:
		if a == b {
			return value.StrVect{}, nil
		}
		return value.Str(a), nil
	case opcode.Cat:
		return value.StrVect{a, b}, nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type str", op)
	}
}

var vecArithOps = map[opcode.BinOp]bool{
	opcode.Add: true, opcode.Sub: true, opcode.Mul: true,
	opcode.Div: true, opcode.Mod: true, opcode.Pow: true,
}

// vecScalarOp applies op elementwise with the vector as the left operand.
func vecScalarOp(op opcode.BinOp, v value.Vect, s float64) (value.Value, error) {
	if !vecArithOps[op] {
		return nil, typeErrorf("operation %s cannot be completed on objects of type vect", op)
	}
	out := make(value.Vect, len(v))
	for i, x := range v {
		r, err := numArith(op, x, s)
		if err != nil {
			return nil, err
		}
		out[i] = float64(r.(value.Num))
	}
	return out, nil
}

// scalarVecOp applies op elementwise with the scalar as the left operand
// (used when an Int/Num opcode is followed by a Vect, e.g. `2 [1 2 3] *`).
func scalarVecOp(op opcode.BinOp, s float64, v value.Vect) (value.Value, error) {
	if !vecArithOps[op] {
		return nil, typeErrorf("operation %s cannot be completed on objects of type vect", op)
	}
	out := make(value.Vect, len(v))
	for i, x := range v {
		r, err := numArith(op, s, x)
		if err != nil {
			return nil, err
		}
		out[i] = float64(r.(value.Num))
	}
	return out, nil
}

func vecElemOp(op opcode.BinOp, a, b value.Vect) (value.Value, error) {
	switch op {
	case opcode.Add, opcode.Sub, opcode.Mul, opcode.Div, opcode.Mod, opcode.Pow:
		if len(a) != len(b) {
			return nil, domainErrorf("elementwise %s requires equal-length vectors (got %d and %d)", op, len(a), len(b))
		}
		out := make(value.Vect, len(a))
		for i := range a {
			r, err := numArith(op, a[i], b[i])
			if err != nil {
				return nil, err
			}
			out[i] = float64(r.(value.Num))
		}
		return out, nil
	case opcode.Cat:
		out := make(value.Vect, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return out, nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type vect", op)
	}
}
