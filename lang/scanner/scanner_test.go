package scanner_test

import (
	"testing"

	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/scanner"
	"github.com/stakvm/stak/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []scanner.Lexeme {
	t.Helper()
	s := scanner.New(src, false, "test")
	require.NoError(t, s.Next()) // prime future
	var out []scanner.Lexeme
	for {
		require.NoError(t, s.Next())
		cur := s.Current()
		if cur.Tok == token.BLANK {
			continue
		}
		out = append(out, cur)
		if cur.Tok == token.EOF {
			break
		}
	}
	return out
}

func kinds(lexemes []scanner.Lexeme) []token.Token {
	out := make([]token.Token, len(lexemes))
	for i, l := range lexemes {
		out[i] = l.Tok
	}
	return out
}

func TestScanLiterals(t *testing.T) {
	got := scanAll(t, `3 4.5 "hi" x`)
	require.Equal(t, []token.Token{
		token.INT, token.WHITE, token.FLOAT, token.WHITE, token.STRING, token.WHITE, token.IDENT, token.EOF,
	}, kinds(got))
	require.Equal(t, int32(3), got[0].Int)
	require.Equal(t, 4.5, got[2].Num)
	require.Equal(t, "hi", got[4].Str)
	require.Equal(t, "x", got[6].Str)
}

func TestScanInfixTable(t *testing.T) {
	got := scanAll(t, `+ == .. **`)
	for i, want := range []opcode.Opcode{
		opcode.BinOpCode{Op: opcode.Add},
		opcode.BoolOpCode{Op: opcode.Eqt},
		opcode.BinOpCode{Op: opcode.Seq},
		opcode.BinOpCode{Op: opcode.Rep},
	} {
		lex := got[i*2]
		require.Equal(t, token.INFIX, lex.Tok)
		require.Equal(t, want, lex.Infix.NewOp())
	}
}

func TestScanAssignForms(t *testing.T) {
	got := scanAll(t, `x = 1`)
	require.Equal(t, token.IDENT, got[0].Tok)
	require.Equal(t, token.EQ, got[2].Tok)

	got = scanAll(t, `sq := dup`)
	require.Equal(t, token.EQPROG, got[2].Tok)
}

func TestScanReservedWords(t *testing.T) {
	got := scanAll(t, `if elif else true false none`)
	want := []token.Token{
		token.IF, token.WHITE, token.ELIF, token.WHITE, token.ELSE, token.WHITE,
		token.CONST, token.WHITE, token.CONST, token.WHITE, token.CONST, token.EOF,
	}
	require.Equal(t, want, kinds(got))
	require.Equal(t, opcode.ConstTrue, got[6].Const)
	require.Equal(t, opcode.ConstFalse, got[8].Const)
	require.Equal(t, opcode.ConstNull, got[10].Const)
}

func TestScanRangeNotDecimal(t *testing.T) {
	got := scanAll(t, `1..5`)
	require.Equal(t, token.INT, got[0].Tok)
	require.Equal(t, int32(1), got[0].Int)
	require.Equal(t, token.INFIX, got[1].Tok)
	require.Equal(t, opcode.Seq, got[1].Infix.Bin)
	require.Equal(t, token.INT, got[2].Tok)
	require.Equal(t, int32(5), got[2].Int)
}

func TestScanMinusIsOwnToken(t *testing.T) {
	got := scanAll(t, `-5`)
	require.Equal(t, token.MINUS, got[0].Tok)
	require.Equal(t, token.INT, got[1].Tok)
}

func TestScanNewlineAndPunctuation(t *testing.T) {
	got := scanAll(t, "(1,\n2)")
	require.Equal(t, []token.Token{
		token.LPAREN, token.INT, token.COMMA, token.EOL, token.INT, token.RPAREN, token.EOF,
	}, kinds(got))
}

func TestScanUnterminatedStringErrors(t *testing.T) {
	s := scanner.New(`("abc`, false, "test")
	require.NoError(t, s.Next())
	err := s.Next()
	require.Error(t, err)
	var lexErr *scanner.LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestScanInteractiveContinuation(t *testing.T) {
	lines := []string{`more"`}
	i := 0
	s := scanner.New(`"abc`, true, "test")
	s.Continue = func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		l := lines[i]
		i++
		return l, true
	}
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.Equal(t, token.STRING, s.Current().Tok)
	require.Equal(t, "abcmore", s.Current().Str)
}
