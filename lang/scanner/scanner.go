// Package scanner implements the lexer (C3): a grapheme-stream tokenizer
// that always exposes two tokens — the current token and the lookahead-1
// future token — refreshed by an advance operation. Grapheme clusters are
// approximated by runes, since the pack carries no grapheme-segmentation
// library; this only affects display of combining-mark text, not any
// language construct.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/token"
)

// Lexeme is one scanned token together with whatever literal payload its
// kind carries.
type Lexeme struct {
	Tok   token.Token
	Int   int32
	Num   float64
	Str   string // STRING and IDENT payload
	White uint8  // WHITE width
	Const opcode.ConstKind
	Infix opcode.Infix
}

func (l Lexeme) String() string {
	switch l.Tok {
	case token.INT:
		return fmt.Sprintf("INT(%d)", l.Int)
	case token.FLOAT:
		return fmt.Sprintf("FLOAT(%g)", l.Num)
	case token.STRING:
		return fmt.Sprintf("STRING(%q)", l.Str)
	case token.IDENT:
		return fmt.Sprintf("IDENT(%s)", l.Str)
	case token.CONST:
		return fmt.Sprintf("CONST(%s)", l.Const)
	case token.INFIX:
		return fmt.Sprintf("INFIX(%v)", l.Infix.NewOp())
	default:
		return l.Tok.String()
	}
}

var blankLexeme = Lexeme{Tok: token.BLANK}

// Scanner tokenizes a rune stream on demand. Construct with New, then call
// Next repeatedly; Current and Future report the lookahead pair after each
// call.
type Scanner struct {
	chars       []rune
	pos         int
	line        int
	breaks      []int
	interactive bool
	file        string

	current Lexeme
	future  Lexeme

	// Continue is called when a string literal runs off the end of input
	// while the scanner is interactive. It must return an additional line of
	// input (without its trailing terminator) or ok=false if none is
	// available.
	Continue func() (line string, ok bool)
}

// New returns a Scanner over src. When interactive is true, an unterminated
// string literal triggers a call to Continue instead of an immediate error.
func New(src string, interactive bool, file string) *Scanner {
	return &Scanner{
		chars:       []rune(src),
		interactive: interactive,
		file:        file,
		current:     blankLexeme,
		future:      blankLexeme,
	}
}

// Current returns the most recently committed token.
func (s *Scanner) Current() Lexeme { return s.current }

// Future returns the lookahead-1 token.
func (s *Scanner) Future() Lexeme { return s.future }

// Line returns the current 1-based line number.
func (s *Scanner) Line() int { return s.line + 1 }

// Next scans the next token, shifting Future into Current and computing a
// new Future.
func (s *Scanner) Next() error {
	if s.pos >= len(s.chars) {
		return s.commit(Lexeme{Tok: token.EOF})
	}
	ch := s.chars[s.pos]
	switch {
	case ch == ' ' || ch == '\r':
		n := s.whitespace(1)
		return s.commit(Lexeme{Tok: token.WHITE, White: n})
	case ch == '\t':
		n := s.whitespace(4)
		return s.commit(Lexeme{Tok: token.WHITE, White: n})
	case ch == '\n':
		return s.newline()
	case ch == '(':
		return s.commitAdv(Lexeme{Tok: token.LPAREN})
	case ch == ')':
		return s.commitAdv(Lexeme{Tok: token.RPAREN})
	case ch == '[':
		return s.commitAdv(Lexeme{Tok: token.LBRACK})
	case ch == ']':
		return s.commitAdv(Lexeme{Tok: token.RBRACK})
	case ch == '{':
		return s.commitAdv(Lexeme{Tok: token.LBRACE})
	case ch == '}':
		return s.commitAdv(Lexeme{Tok: token.RBRACE})
	case ch == ',':
		return s.commitAdv(Lexeme{Tok: token.COMMA})
	case ch == ';':
		return s.commitAdv(Lexeme{Tok: token.SEMI})
	case ch == '"' || ch == '\'':
		return s.scanString(ch)
	case isNumChar(ch):
		return s.scanNumber(s.pos, 0)
	case isSymChar(ch):
		return s.scanInfix(s.pos)
	default:
		return s.scanSymbol(s.pos)
	}
}

// SkipWhite advances past a single WHITE current token, a convenience used
// by the compiler between primaries.
func (s *Scanner) SkipWhite() error {
	if s.current.Tok == token.WHITE {
		return s.Next()
	}
	return nil
}

func isNumChar(ch rune) bool { return ch >= '0' && ch <= '9' }

const symChars = "=-+!@#$%^&*:.<>?/|\\~"

func isSymChar(ch rune) bool { return containsRune(symChars, ch) }

const stopChars = " \t\r\n[](){}!@#$%^&*-+=:;,.<>?/|\\~`'\""
const stopCharsNum = " \t\r\n[](){}!@#$%^&*-+=:;,<>?/|\\~`'\""

func isStopChar(ch rune) bool    { return containsRune(stopChars, ch) }
func isStopNumChar(ch rune) bool { return containsRune(stopCharsNum, ch) }

func containsRune(set string, ch rune) bool {
	for _, c := range set {
		if c == ch {
			return true
		}
	}
	return false
}

func (s *Scanner) at(i int) rune {
	if i < 0 || i >= len(s.chars) {
		return 0
	}
	return s.chars[i]
}

func (s *Scanner) whitespace(n uint8) uint8 {
	for {
		s.pos++
		switch s.at(s.pos) {
		case ' ', '\r':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
}

func (s *Scanner) newline() error {
	s.breaks = append(s.breaks, s.pos)
	s.line++
	return s.commitAdv(Lexeme{Tok: token.EOL})
}

func (s *Scanner) scanString(stop rune) error {
	start := s.pos
	for {
		ch, err := s.nextStringChar(stop)
		if err != nil {
			return err
		}
		if ch == stop {
			break
		}
		if ch == '\\' {
			s.pos += 2
		}
	}
	str := string(s.chars[start+1 : s.pos])
	s.pos++
	return s.commit(Lexeme{Tok: token.STRING, Str: str})
}

// nextStringChar advances past one character inside a string literal,
// requesting continuation input (in interactive mode) when the source runs
// out before the closing quote is found.
func (s *Scanner) nextStringChar(stop rune) (rune, error) {
	s.pos++
	for s.pos >= len(s.chars) {
		if s.interactive && s.Continue != nil {
			line, ok := s.Continue()
			if !ok {
				return 0, lexErrorf("unable to read continuation input")
			}
			s.chars = append(s.chars, []rune(line)...)
			continue
		}
		return 0, lexErrorf("file ended before reaching %q; command could not be determined", string(stop))
	}
	return s.chars[s.pos], nil
}

func (s *Scanner) nextWord(start int) string {
	for {
		s.pos++
		ch := s.at(s.pos)
		if s.pos >= len(s.chars) || isStopChar(ch) {
			break
		}
	}
	return string(s.chars[start:s.pos])
}

func (s *Scanner) scanNumber(start int, nperiod int) error {
	nonDigit := false
	for {
		s.pos++
		ch := s.at(s.pos)
		if ch == '.' {
			if s.at(s.pos+1) == '.' {
				return s.makeNumber(start, s.pos, nperiod, nonDigit)
			}
			nperiod++
			continue
		}
		if s.pos >= len(s.chars) {
			return s.makeNumber(start, s.pos, nperiod, nonDigit)
		}
		if isStopNumChar(ch) {
			return s.makeNumber(start, s.pos, nperiod, nonDigit)
		}
		if !isNumChar(ch) {
			nonDigit = true
		}
	}
}

func (s *Scanner) makeNumber(start, end, nperiod int, isSym bool) error {
	str := string(s.chars[start:end])
	if isSym {
		return s.commit(Lexeme{Tok: token.IDENT, Str: str})
	}
	if nperiod == 0 {
		if n, err := strconv.ParseInt(str, 10, 32); err == nil {
			return s.commit(Lexeme{Tok: token.INT, Int: int32(n)})
		}
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return s.commit(Lexeme{Tok: token.FLOAT, Num: f})
	}
	return s.commit(Lexeme{Tok: token.IDENT, Str: str})
}

func (s *Scanner) scanInfix(start int) error {
	for {
		s.pos++
		ch := s.at(s.pos)
		if s.pos >= len(s.chars) || !isSymChar(ch) {
			break
		}
	}
	str := string(s.chars[start:s.pos])
	switch str {
	case "=":
		return s.commit(Lexeme{Tok: token.EQ})
	case ":=":
		return s.commit(Lexeme{Tok: token.EQPROG})
	case ":":
		return s.commit(Lexeme{Tok: token.COLON})
	case "-":
		return s.commit(Lexeme{Tok: token.MINUS})
	}
	if in, ok := opcode.InfixTable[str]; ok {
		return s.commit(Lexeme{Tok: token.INFIX, Infix: in})
	}
	return s.commit(Lexeme{Tok: token.IDENT, Str: str})
}

func (s *Scanner) scanSymbol(start int) error {
	str := s.nextWord(start)
	switch str {
	case "if":
		return s.commit(Lexeme{Tok: token.IF})
	case "elif":
		return s.commit(Lexeme{Tok: token.ELIF})
	case "else":
		return s.commit(Lexeme{Tok: token.ELSE})
	case "true":
		return s.commit(Lexeme{Tok: token.CONST, Const: opcode.ConstTrue})
	case "false":
		return s.commit(Lexeme{Tok: token.CONST, Const: opcode.ConstFalse})
	case "none":
		return s.commit(Lexeme{Tok: token.CONST, Const: opcode.ConstNull})
	}
	return s.commit(Lexeme{Tok: token.IDENT, Str: str})
}

func (s *Scanner) commit(l Lexeme) error {
	s.current, s.future = s.future, l
	return nil
}

func (s *Scanner) commitAdv(l Lexeme) error {
	s.current, s.future = s.future, l
	s.pos++
	return nil
}
