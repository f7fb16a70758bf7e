package machine

import (
	"math"

	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

var mathReductions = map[opcode.MathOp]bool{
	opcode.Max: true, opcode.Min: true, opcode.Mean: true,
	opcode.Sd: true, opcode.Var: true,
}

// dispatchMath implements the MathOp table (§4.5). Most functions apply
// pointwise to a scalar or elementwise to a Vect; max/mean/min/sd/var
// instead reduce their operand (a Vect, a scalar, or a Quote run over a
// fresh stack) to a single Num.
func (m *Machine) dispatchMath(op opcode.MathOp, arg value.Value) (value.Value, error) {
	if mathReductions[op] {
		vals, err := m.reductionOperands(arg)
		if err != nil {
			return nil, err
		}
		return reduceMath(op, vals)
	}
	switch v := arg.(type) {
	case value.Int:
		return pointwiseMath(op, float64(v))
	case value.Num:
		return pointwiseMath(op, float64(v))
	case value.Vect:
		out := make(value.Vect, len(v))
		for i, x := range v {
			r, err := pointwiseMath(op, x)
			if err != nil {
				return nil, err
			}
			out[i] = asFloat(r)
		}
		return out, nil
	default:
		return nil, typeErrorf("operation %s cannot be completed on objects of type %s", op, arg.Type())
	}
}

// reductionOperands gathers the values a reducing MathOp draws from: a
// Vect directly, a bare scalar as a one-element sample, or a Quote
// evaluated over a fresh operand stack (§4.5, the quotation-argument form).
func (m *Machine) reductionOperands(arg value.Value) ([]float64, error) {
	switch v := arg.(type) {
	case value.Vect:
		return []float64(v), nil
	case value.Int:
		return []float64{float64(v)}, nil
	case value.Num:
		return []float64{float64(v)}, nil
	case value.Quote:
		vals, err := m.runNewstack(append([]opcode.Opcode(nil), v...))
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(vals))
		for i, rv := range vals {
			f, err := scalarOperand(rv)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, typeErrorf("math reduction requires a vect, num, or quote operand, got %s", arg.Type())
	}
}

func scalarOperand(v value.Value) (float64, error) {
	switch v := v.(type) {
	case value.Int:
		return float64(v), nil
	case value.Num:
		return float64(v), nil
	default:
		return 0, typeErrorf("math reduction requires numeric operands, got %s", v.Type())
	}
}

func asFloat(v value.Value) float64 {
	switch v := v.(type) {
	case value.Int:
		return float64(v)
	case value.Num:
		return float64(v)
	default:
		return math.NaN()
	}
}

func reduceMath(op opcode.MathOp, vals []float64) (value.Value, error) {
	switch op {
	case opcode.Max:
		if len(vals) == 0 {
			return value.Num(math.NaN()), nil
		}
		best := vals[0]
		for _, x := range vals[1:] {
			if x > best {
				best = x
			}
		}
		return value.Num(best), nil
	case opcode.Min:
		if len(vals) == 0 {
			return value.Num(math.NaN()), nil
		}
		best := vals[0]
		for _, x := range vals[1:] {
			if x < best {
				best = x
			}
		}
		return value.Num(best), nil
	case opcode.Mean:
		sum, n := meanSum(vals)
		if n == 0 {
			return value.Num(math.NaN()), nil
		}
		return value.Num(sum / float64(n)), nil
	case opcode.Var:
		v, err := variance(vals)
		return value.Num(v), err
	case opcode.Sd:
		v, err := variance(vals)
		if err != nil {
			return nil, err
		}
		return value.Num(math.Sqrt(v)), nil
	default:
		return nil, runtimeErrorf("unhandled math reduction %s", op)
	}
}

// meanSum skips NaN samples, reducing the effective count along with the
// sum so a NaN never silently drags the mean to NaN.
func meanSum(vals []float64) (sum float64, n int) {
	for _, x := range vals {
		if math.IsNaN(x) {
			continue
		}
		sum += x
		n++
	}
	return sum, n
}

// variance applies Bessel's correction (n-1) over the non-NaN values. The
// length checks run against the raw (pre-filter) sample size, not the
// NaN-filtered count: an empty sample is NaN, and a sample of exactly one
// value is always 0 even if that value is itself NaN. A larger sample that
// filters down to zero non-NaN values is also 0, not NaN; one that filters
// down to exactly one non-NaN value falls through to the general case,
// where ss is 0 and the n-1 divisor is 0, naturally producing 0/0 = NaN.
func variance(vals []float64) (float64, error) {
	switch len(vals) {
	case 0:
		return math.NaN(), nil
	case 1:
		return 0, nil
	}
	sum, n := meanSum(vals)
	if n == 0 {
		return 0, nil
	}
	mean := sum / float64(n)
	var ss float64
	for _, x := range vals {
		if math.IsNaN(x) {
			continue
		}
		d := x - mean
		ss += d * d
	}
	return ss / float64(n-1), nil
}

func pointwiseMath(op opcode.MathOp, x float64) (value.Value, error) {
	switch op {
	case opcode.Abs:
		return value.Num(math.Abs(x)), nil
	case opcode.Acos:
		return value.Num(math.Acos(x)), nil
	case opcode.Acosh:
		return value.Num(math.Acosh(x)), nil
	case opcode.Asin:
		return value.Num(math.Asin(x)), nil
	case opcode.Asinh:
		return value.Num(math.Asinh(x)), nil
	case opcode.Atan:
		return value.Num(math.Atan(x)), nil
	case opcode.Atanh:
		return value.Num(math.Atanh(x)), nil
	case opcode.Cbrt:
		return value.Num(math.Cbrt(x)), nil
	case opcode.Ceil:
		return value.Num(math.Ceil(x)), nil
	case opcode.Cos:
		return value.Num(math.Cos(x)), nil
	case opcode.Cosh:
		return value.Num(math.Cosh(x)), nil
	case opcode.Exp:
		return value.Num(math.Exp(x)), nil
	case opcode.Floor:
		return value.Num(math.Floor(x)), nil
	case opcode.Fract:
		_, frac := math.Modf(x)
		return value.Num(frac), nil
	case opcode.Ln:
		return value.Num(math.Log(x)), nil
	case opcode.Log10:
		return value.Num(math.Log10(x)), nil
	case opcode.Log2:
		return value.Num(math.Log2(x)), nil
	case opcode.Neg:
		return value.Num(-x), nil
	case opcode.Recip:
		return value.Num(1 / x), nil
	case opcode.Round0:
		return value.Num(math.Round(x)), nil
	case opcode.Sign:
		return value.Num(sign(x)), nil
	case opcode.Sin:
		return value.Num(math.Sin(x)), nil
	case opcode.Sinh:
		return value.Num(math.Sinh(x)), nil
	case opcode.Sqrt:
		return value.Num(math.Sqrt(x)), nil
	case opcode.Tan:
		return value.Num(math.Tan(x)), nil
	case opcode.Tanh:
		return value.Num(math.Tanh(x)), nil
	case opcode.Trunc:
		return value.Int(int32(math.Trunc(x))), nil
	default:
		return nil, runtimeErrorf("unhandled math op %s", op)
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
