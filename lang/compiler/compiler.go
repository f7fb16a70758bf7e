// Package compiler implements the Pratt-style precedence parser (C4): it
// turns a token stream into one flat, postfix opcode list per statement, the
// unit the machine's eval loop runs as a single command.
package compiler

import (
	"github.com/stakvm/stak/lang/opcode"
	"github.com/stakvm/stak/lang/scanner"
	"github.com/stakvm/stak/lang/token"
)

// Compiler parses tokens read from a Scanner. indent and stop are small
// pieces of state threaded between parsePrimary/parseBinary/parseUntil while
// a single statement is being read; they do not survive across statements.
type Compiler struct {
	s      *scanner.Scanner
	indent uint8
	stop   token.Token
}

// New returns a Compiler reading from s. s must not have been advanced yet:
// New primes its two-token lookahead itself.
func New(s *scanner.Scanner) (*Compiler, error) {
	if err := s.Next(); err != nil {
		return nil, err
	}
	if err := s.Next(); err != nil {
		return nil, err
	}
	return &Compiler{s: s, stop: token.BLANK}, nil
}

// Compile scans and compiles src in one pass, returning one opcode list per
// top-level statement.
func Compile(src string, interactive bool, file string) ([][]opcode.Opcode, error) {
	c, err := New(scanner.New(src, interactive, file))
	if err != nil {
		return nil, err
	}
	return c.CompileAll()
}

// CompileAll compiles every remaining statement up to EOF.
func (c *Compiler) CompileAll() ([][]opcode.Opcode, error) {
	var out [][]opcode.Opcode
	for c.s.Current().Tok != token.EOF {
		stmt, ok, err := c.Statement()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, stmt)
	}
	return out, nil
}

// Statement compiles the next statement, terminated by Eol or Semicolon. ok
// is false once the scanner has already reached EOF with nothing left to
// compile. CompileAll calls it once per statement until EOF.
func (c *Compiler) Statement() (ops []opcode.Opcode, ok bool, err error) {
	if c.s.Current().Tok == token.EOF {
		return nil, false, nil
	}
	ops, err = c.parseUntil([]token.Token{token.EOL, token.SEMI})
	if err != nil {
		return nil, false, err
	}
	return ops, true, nil
}

func isMatch(tok token.Token, stop []token.Token) bool {
	for _, t := range stop {
		if tok == t {
			return true
		}
	}
	return false
}

// parseUntil accumulates opcodes, one primary-plus-trailing-binary chain at
// a time, until the current token is in stop. It consumes the stop token
// itself before returning (folding a trailing newline's indentation into
// c.indent), mirroring the lexer's own whitespace-folding so callers never
// see raw layout tokens.
func (c *Compiler) parseUntil(stop []token.Token) ([]opcode.Opcode, error) {
	var out []opcode.Opcode
	c.stop = token.BLANK
	for !isMatch(c.s.Current().Tok, stop) {
		if err := c.s.SkipWhite(); err != nil {
			return nil, err
		}
		prime, err := c.parsePrimary(true, stop)
		if err != nil {
			return nil, err
		}
		if isMatch(c.s.Current().Tok, stop) {
			out = append(out, walk(prime)...)
			break
		}
		combined, _, err := c.parseBinary(prime, token.PrecMin, stop)
		if err != nil {
			return nil, err
		}
		out = append(out, walk(combined)...)
		if (c.stop == token.EOL || c.stop == token.SEMI) && isMatch(c.stop, stop) {
			// an assignment's right-hand side already consumed the terminator
			return out, nil
		}
		if c.s.Current().Tok == token.EOF {
			return out, nil
		}
	}
	c.stop = c.s.Current().Tok
	if c.s.Current().Tok == token.EOL {
		if err := c.s.Next(); err != nil {
			return nil, err
		}
		if c.s.Current().Tok == token.WHITE {
			c.indent = c.s.Current().White
			if err := c.s.Next(); err != nil {
				return nil, err
			}
		} else {
			c.indent = 0
		}
	} else if err := c.s.Next(); err != nil {
		return nil, err
	}
	return out, nil
}

// parsePrimary reads one atomic expression: a literal, a parenthesised or
// bracketed group, a unary negation, or a leading-infix postfix section.
func (c *Compiler) parsePrimary(first bool, stop []token.Token) (expr, error) {
	cur := c.s.Current()
	switch cur.Tok {
	case token.WHITE, token.BLANK:
		if err := c.s.Next(); err != nil {
			return nil, err
		}
		if isMatch(c.s.Current().Tok, stop) {
			return blankExpr{}, nil
		}
		return c.parsePrimary(first, stop)

	case token.EOF:
		return blankExpr{}, nil

	case token.EOL:
		nlines, err := c.consumeEols()
		if err != nil {
			return nil, err
		}
		if isMatch(c.s.Current().Tok, stop) {
			return singleExpr{opcode.AddLineOp{N: nlines, Dir: opcode.Left}}, nil
		}
		inner, err := c.parsePrimary(first, stop)
		if err != nil {
			return nil, err
		}
		return leftCodeExpr{code: opcode.AddLineOp{N: nlines, Dir: opcode.Left}, rhs: inner}, nil

	case token.LPAREN:
		if err := c.s.Next(); err != nil {
			return nil, err
		}
		body, err := c.parseUntil([]token.Token{token.RPAREN})
		if err != nil {
			return nil, err
		}
		return c.ending(groupExpr{code: body}, stop)

	case token.LBRACK:
		if err := c.s.Next(); err != nil {
			return nil, err
		}
		body, err := c.parseUntil([]token.Token{token.RBRACK})
		if err != nil {
			return nil, err
		}
		return c.ending(singleExpr{opcode.QuoteOp{Body: body}}, stop)

	case token.MINUS:
		return c.parseNegation()

	case token.CONST:
		return c.finishLeaf(singleExpr{opcode.ConstOp{Kind: cur.Const}}, stop)
	case token.INT:
		return c.finishLeaf(singleExpr{opcode.IntOp{N: cur.Int}}, stop)
	case token.FLOAT:
		return c.finishLeaf(singleExpr{opcode.NumOp{N: cur.Num}}, stop)
	case token.STRING:
		return c.finishLeaf(singleExpr{opcode.StrOp{S: cur.Str}}, stop)
	case token.IDENT:
		return c.finishLeaf(singleExpr{opcode.SymOp{Name: cur.Str}}, stop)

	case token.INFIX:
		op := cur.Infix.NewOp()
		if err := c.s.Next(); err != nil {
			return nil, err
		}
		if isMatch(c.s.Current().Tok, stop) {
			return nil, parseErrorf("stop token reached before infix operation finished parsing")
		}
		res, err := c.parsePrimary(false, stop)
		if err != nil {
			return nil, err
		}
		rhsOps := walk(rightCodeExpr{code: op, rhs: res})
		if first {
			return groupExpr{code: rhsOps}, nil
		}
		return singleExpr{opcode.QuoteOp{Body: rhsOps}}, nil

	default:
		return nil, parseErrorf("%#v cannot start an expression", cur.Tok)
	}
}

// finishLeaf advances past a just-matched literal token and hands the
// resulting leaf to ending, which may fold it into a call.
func (c *Compiler) finishLeaf(e expr, stop []token.Token) (expr, error) {
	if err := c.s.Next(); err != nil {
		return nil, err
	}
	return c.ending(e, stop)
}

// parseNegation handles a leading '-': flip a constant's sign/polarity,
// negate a number, or emit sym-then-neg for a bare name.
func (c *Compiler) parseNegation() (expr, error) {
	if err := c.s.Next(); err != nil {
		return nil, err
	}
	cur := c.s.Current()
	var result expr
	switch cur.Tok {
	case token.CONST:
		result = singleExpr{negateConst(cur.Const)}
	case token.INT:
		result = singleExpr{opcode.IntOp{N: -cur.Int}}
	case token.FLOAT:
		result = singleExpr{opcode.NumOp{N: -cur.Num}}
	case token.IDENT:
		result = doubleExpr{c1: opcode.SymOp{Name: cur.Str}, c2: opcode.MathOpCode{Op: opcode.Neg}}
	default:
		return nil, parseErrorf("unary '-' cannot apply to %#v", cur.Tok)
	}
	if err := c.s.Next(); err != nil {
		return nil, err
	}
	return result, nil
}

func negateConst(k opcode.ConstKind) opcode.Opcode {
	switch k {
	case opcode.ConstTrue:
		return opcode.ConstOp{Kind: opcode.ConstFalse}
	case opcode.ConstFalse:
		return opcode.ConstOp{Kind: opcode.ConstTrue}
	default:
		return opcode.ConstOp{Kind: opcode.ConstNull}
	}
}

// consumeEols folds a run of blank lines (possibly with leading whitespace
// on the final line, recorded into c.indent) into a line count.
func (c *Compiler) consumeEols() (uint32, error) {
	nlines := uint32(1)
	for {
		if err := c.s.Next(); err != nil {
			return 0, err
		}
		switch c.s.Current().Tok {
		case token.EOL:
			nlines++
		case token.WHITE:
			c.indent = c.s.Current().White
		default:
			c.indent = 0
			return nlines, nil
		}
	}
}

// parseBinary implements precedence climbing: it repeatedly folds the next
// infix operator into lhs as long as the operator's precedence strictly
// exceeds prec, and also absorbs assignment forms and newline layout.
func (c *Compiler) parseBinary(lhs expr, prec token.Prec, stop []token.Token) (expr, token.Prec, error) {
	cur := c.s.Current()
	switch cur.Tok {
	case token.WHITE, token.BLANK:
		if err := c.s.Next(); err != nil {
			return nil, prec, err
		}
		if isMatch(c.s.Current().Tok, stop) {
			return lhs, prec, nil
		}
		return c.parseBinary(lhs, prec, stop)

	case token.EOL:
		if isMatch(token.EOL, stop) {
			return lhs, prec, nil
		}
		nlines, err := c.consumeEols()
		if err != nil {
			return nil, prec, err
		}
		if isMatch(c.s.Current().Tok, stop) {
			return singleExpr{opcode.AddLineOp{N: nlines, Dir: opcode.Right}}, prec, nil
		}
		return c.parseBinary(rightCodeExpr{code: opcode.AddLineOp{N: nlines, Dir: opcode.Right}, rhs: lhs}, prec, stop)

	case token.EQ:
		if err := c.s.Next(); err != nil {
			return nil, prec, err
		}
		rhs, err := c.parseUntil([]token.Token{token.EOL, token.SEMI})
		if err != nil {
			return nil, prec, err
		}
		out := append(rhs, walkAssign(lhs, false)...)
		return groupExpr{code: out}, prec, nil

	case token.EQPROG:
		if err := c.s.Next(); err != nil {
			return nil, prec, err
		}
		rhs, err := c.parseUntil([]token.Token{token.EOL, token.SEMI})
		if err != nil {
			return nil, prec, err
		}
		out := []opcode.Opcode{opcode.QuoteOp{Body: rhs}}
		out = append(out, walkAssign(lhs, true)...)
		return groupExpr{code: out}, prec, nil

	case token.INFIX:
		in := cur.Infix
		if in.Prec <= prec {
			return lhs, prec, nil
		}
		if err := c.s.Next(); err != nil {
			return nil, prec, err
		}
		var rhs expr = blankExpr{}
		if next := c.s.Current().Tok; isMatch(next, stop) {
			// a statement terminator ends a trailing operator the way EOF does;
			// a closing ) or ] right after the operator is an error
			if next != token.EOL && next != token.SEMI {
				return nil, prec, parseErrorf("stop token reached before infix operation finished parsing")
			}
		} else {
			var err error
			if rhs, err = c.parsePrimary(false, stop); err != nil {
				return nil, prec, err
			}
		}
		combined, newPrec, err := c.parseBinary(rhs, in.Prec, stop)
		if err != nil {
			return nil, prec, err
		}
		binOp := binaryExpr{op: in.NewOp(), lhs: lhs, rhs: combined}
		if newPrec <= prec {
			return binOp, newPrec, nil
		}
		return c.parseBinary(binOp, prec, stop)

	default:
		return lhs, prec, nil
	}
}

// ending inspects the token right after a just-parsed primary; a following
// '(' turns the primary into the callee of a call, with each comma-separated
// argument compiled as its own quote.
func (c *Compiler) ending(e expr, stop []token.Token) (expr, error) {
	switch c.s.Current().Tok {
	case token.WHITE, token.BLANK:
		if err := c.s.Next(); err != nil {
			return nil, err
		}
		return e, nil

	case token.LPAREN:
		if err := c.s.Next(); err != nil {
			return nil, err
		}
		var argCodes []opcode.Opcode
		for c.stop != token.RPAREN {
			arg, err := c.parseUntil([]token.Token{token.COMMA, token.RPAREN})
			if err != nil {
				return nil, err
			}
			argCodes = append(argCodes, opcode.QuoteOp{Body: arg})
		}
		c.stop = token.BLANK
		return c.ending(callExpr{argCodes: argCodes, callee: e}, stop)

	default:
		return e, nil
	}
}
