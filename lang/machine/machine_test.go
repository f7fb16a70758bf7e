package machine_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakvm/stak/lang/compiler"
	"github.com/stakvm/stak/lang/env"
	"github.com/stakvm/stak/lang/machine"
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/value"
)

// run compiles src, evaluates every statement against a fresh machine, and
// returns the machine (for stack/output inspection) and the first error
// encountered, if any.
func run(t *testing.T, src string) (*machine.Machine, error) {
	t.Helper()
	stmts, err := compiler.Compile(src, false, "test")
	require.NoError(t, err)

	chain := env.NewChain(machine.NewBaseEnv(), machine.NewGlobalEnv(), 0)
	var out bytes.Buffer
	m := machine.New(chain, &out, strings.NewReader(""), 0)
	for _, ops := range stmts {
		if err := m.Run(ops); err != nil {
			return m, err
		}
	}
	return m, nil
}

func pop(t *testing.T, m *machine.Machine) value.Value {
	t.Helper()
	v, err := m.Stack.Pop()
	require.NoError(t, err)
	return v
}

func TestArithmeticIntPromotesToNumOnDivide(t *testing.T) {
	m, err := run(t, "7 2 /")
	require.NoError(t, err)
	require.Equal(t, value.Num(3.5), pop(t, m))
}

func TestArithmeticIntStaysIntOnAdd(t *testing.T) {
	m, err := run(t, "1 2 +")
	require.NoError(t, err)
	require.Equal(t, value.Int(3), pop(t, m))
}

func TestArithmeticPrecedenceClimbing(t *testing.T) {
	m, err := run(t, "1 + 2 * 3")
	require.NoError(t, err)
	require.Equal(t, value.Int(7), pop(t, m))
}

func TestDivisionByIntZeroIsDomainError(t *testing.T) {
	_, err := run(t, "1 0 /")
	require.Error(t, err)
	var machErr *machine.Error
	require.ErrorAs(t, err, &machErr)
	require.Equal(t, machine.DomainError, machErr.Kind)
}

func TestStringConcatenation(t *testing.T) {
	m, err := run(t, `"foo" "bar" +`)
	require.NoError(t, err)
	require.Equal(t, value.Str("foobar"), pop(t, m))
}

func TestStringRepeat(t *testing.T) {
	m, err := run(t, `"ab" 3 *`)
	require.NoError(t, err)
	require.Equal(t, value.Str("ababab"), pop(t, m))
}

func TestStringSplit(t *testing.T) {
	m, err := run(t, `"a,b,c" "," //`)
	require.NoError(t, err)
	require.Equal(t, value.StrVect{"a", "b", "c"}, pop(t, m))
}

func TestRangeOperator(t *testing.T) {
	m, err := run(t, "1..5")
	require.NoError(t, err)
	require.Equal(t, value.Vect{1, 2, 3, 4, 5}, pop(t, m))
}

func TestStackDup(t *testing.T) {
	m, err := run(t, "5 dup mul")
	require.NoError(t, err)
	require.Equal(t, value.Int(25), pop(t, m))
}

func TestStackSwap(t *testing.T) {
	m, err := run(t, "1 2 swap")
	require.NoError(t, err)
	require.Equal(t, value.Int(1), pop(t, m))
	require.Equal(t, value.Int(2), pop(t, m))
}

func TestStackBury(t *testing.T) {
	// bury rotates the top down two positions: 1 2 3 (3 on top) -> 3 1 2.
	m, err := run(t, "1 2 3 bury")
	require.NoError(t, err)
	require.Equal(t, value.Int(2), pop(t, m))
	require.Equal(t, value.Int(1), pop(t, m))
	require.Equal(t, value.Int(3), pop(t, m))
}

func TestStackDig(t *testing.T) {
	// dig rotates the 3rd element to the top: 1 2 3 (3 on top) -> 2 3 1.
	m, err := run(t, "1 2 3 dig")
	require.NoError(t, err)
	require.Equal(t, value.Int(1), pop(t, m))
	require.Equal(t, value.Int(3), pop(t, m))
	require.Equal(t, value.Int(2), pop(t, m))
}

func TestStackBuryDigRoundTrip(t *testing.T) {
	m, err := run(t, "1 2 3 bury dig")
	require.NoError(t, err)
	require.Equal(t, value.Int(3), pop(t, m))
	require.Equal(t, value.Int(2), pop(t, m))
	require.Equal(t, value.Int(1), pop(t, m))
}

func TestStackUnderflowReportsKind(t *testing.T) {
	_, err := run(t, "swap")
	require.Error(t, err)
	var machErr *machine.Error
	require.ErrorAs(t, err, &machErr)
	require.Equal(t, machine.UnderflowError, machErr.Kind)
}

func TestComparisonPeeksLeftOperand(t *testing.T) {
	m, err := run(t, "3 5 <")
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), pop(t, m))
	require.Equal(t, value.Int(3), pop(t, m))
}

func TestLookupErrorOnUndefinedName(t *testing.T) {
	_, err := run(t, "undefined_thing")
	require.Error(t, err)
	var machErr *machine.Error
	require.ErrorAs(t, err, &machErr)
	require.Equal(t, machine.LookupError, machErr.Kind)
}

func TestMathSqrt(t *testing.T) {
	m, err := run(t, "16 sqrt")
	require.NoError(t, err)
	require.Equal(t, value.Num(4), pop(t, m))
}

func TestMathMeanOverVect(t *testing.T) {
	m, err := run(t, "[1 2 3 4] mean")
	require.NoError(t, err)
	require.Equal(t, value.Num(2.5), pop(t, m))
}

func TestMathVarianceOfSingleSampleIsZero(t *testing.T) {
	m, err := run(t, "[5] var")
	require.NoError(t, err)
	require.Equal(t, value.Num(0), pop(t, m))
}

func TestMathVarianceOfSingleNaNIsZero(t *testing.T) {
	// a raw sample of length 1 is always 0, even when the one value is NaN.
	m, err := run(t, "[NaN] var")
	require.NoError(t, err)
	require.Equal(t, value.Num(0), pop(t, m))
}

func TestMathVarianceOfAllNaNPairIsZero(t *testing.T) {
	// a longer sample that filters down to zero non-NaN values is also 0.
	m, err := run(t, "[NaN NaN] var")
	require.NoError(t, err)
	require.Equal(t, value.Num(0), pop(t, m))
}

func TestMathVarianceOfOneRealAmongNaNsIsNaN(t *testing.T) {
	// filtering down to exactly one non-NaN value hits ss=0 over a 0 divisor.
	m, err := run(t, "[NaN NaN 5] var")
	require.NoError(t, err)
	v, ok := pop(t, m).(value.Num)
	require.True(t, ok)
	require.True(t, math.IsNaN(float64(v)))
}

func TestUserDefinedProgramAutoInvokes(t *testing.T) {
	m, err := run(t, "sq := dup mul\n5 sq")
	require.NoError(t, err)
	require.Equal(t, value.Int(25), pop(t, m))
}

func TestCombinatorDo(t *testing.T) {
	m, err := run(t, "3 4 [+ ] do")
	require.NoError(t, err)
	require.Equal(t, value.Int(7), pop(t, m))
}

func TestCombinatorDip(t *testing.T) {
	m, err := run(t, "1 2 3 [+ ] dip")
	require.NoError(t, err)
	require.Equal(t, value.Int(3), pop(t, m))
	require.Equal(t, value.Int(3), pop(t, m))
}

func TestCombinatorIfthenTakesBranchOnTrue(t *testing.T) {
	m, err := run(t, "true [1] ifthen")
	require.NoError(t, err)
	require.Equal(t, value.Int(1), pop(t, m))
}

func TestCombinatorIfthenSkipsBranchOnFalse(t *testing.T) {
	m, err := run(t, "false [1] ifthen")
	require.NoError(t, err)
	require.Equal(t, 0, m.Stack.Len())
}

func TestCombinatorIfelse(t *testing.T) {
	m, err := run(t, "false [1] [2] ifelse")
	require.NoError(t, err)
	require.Equal(t, value.Int(2), pop(t, m))
}

func TestAssignmentBindsGlobalName(t *testing.T) {
	m, err := run(t, "x = 10\nx x +")
	require.NoError(t, err)
	require.Equal(t, value.Int(20), pop(t, m))
}

func TestPrintWritesToStdout(t *testing.T) {
	stmts, err := compiler.Compile(`"hi" print`, false, "test")
	require.NoError(t, err)
	chain := env.NewChain(machine.NewBaseEnv(), machine.NewGlobalEnv(), 0)
	var out bytes.Buffer
	m := machine.New(chain, &out, strings.NewReader(""), 0)
	for _, ops := range stmts {
		require.NoError(t, m.Run(ops))
	}
	require.Equal(t, "hi\n", out.String())
}

func TestVectOrderedComparisonProducesBoolVect(t *testing.T) {
	m, err := run(t, "(3..1) > (1..3)")
	require.NoError(t, err)
	require.Equal(t, value.BoolVect{true, false, false}, pop(t, m))
}

func TestBoolVectCoercesToZeroOneInArithmetic(t *testing.T) {
	m, err := run(t, "x = 1..3\ny = 3..1\nz = y > x\nz + x")
	require.NoError(t, err)
	require.Equal(t, value.Vect{2, 2, 3}, pop(t, m))
}

func TestMatElementwiseArithmetic(t *testing.T) {
	chain := env.NewChain(machine.NewBaseEnv(), machine.NewGlobalEnv(), 0)
	var out bytes.Buffer
	m := machine.New(chain, &out, strings.NewReader(""), 0)
	require.NoError(t, m.Stack.Push(value.NewMat(2, 2, []float64{1, 2, 3, 4})))
	require.NoError(t, m.Stack.Push(value.NewMat(2, 2, []float64{10, 20, 30, 40})))
	require.NoError(t, m.Run([]opcode.Opcode{opcode.BinOpCode{Op: opcode.Add}}))
	require.Equal(t, value.NewMat(2, 2, []float64{11, 22, 33, 44}), pop(t, m))
}

func TestMatShapeMismatchIsDomainError(t *testing.T) {
	chain := env.NewChain(machine.NewBaseEnv(), machine.NewGlobalEnv(), 0)
	var out bytes.Buffer
	m := machine.New(chain, &out, strings.NewReader(""), 0)
	require.NoError(t, m.Stack.Push(value.NewMat(2, 2, []float64{1, 2, 3, 4})))
	require.NoError(t, m.Stack.Push(value.NewMat(1, 4, []float64{1, 2, 3, 4})))
	err := m.Run([]opcode.Opcode{opcode.BinOpCode{Op: opcode.Add}})
	require.Error(t, err)
	var merr *machine.Error
	require.ErrorAs(t, err, &merr)
	require.Equal(t, machine.DomainError, merr.Kind)
}

func TestStrVectBroadcastFormatsNumbersDuringConcat(t *testing.T) {
	m, err := run(t, `(1..3) + ("a" ++ "b")`)
	require.NoError(t, err)
	require.Equal(t, value.StrVect{"1a", "2b", "3a"}, pop(t, m))
}
