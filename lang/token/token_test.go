package token

import "testing"

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestTokenGoString(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{LPAREN, "'('"},
		{MINUS, "'-'"},
		{IDENT, "identifier"},
		{EOF, "end of file"},
	}
	for _, c := range cases {
		if got := c.tok.GoString(); got != c.want {
			t.Errorf("Token(%d).GoString() = %q, want %q", c.tok, got, c.want)
		}
	}
}

func TestPrecString(t *testing.T) {
	for p := PrecMin; p <= PrecCall; p++ {
		if p.String() == "" {
			t.Errorf("missing string representation of precedence %d", p)
		}
	}
}

func TestPrecOrdering(t *testing.T) {
	if !(PrecMin < PrecAssign && PrecAssign < PrecConditional && PrecConditional < PrecNullish &&
		PrecNullish < PrecOr && PrecOr < PrecAnd && PrecAnd < PrecEquality &&
		PrecEquality < PrecInequality && PrecInequality < PrecAdd && PrecAdd < PrecMul &&
		PrecMul < PrecGeneral && PrecGeneral < PrecSeq && PrecSeq < PrecUnary &&
		PrecUnary < PrecPow && PrecPow < PrecCall) {
		t.Error("precedence levels are not in the expected ascending order")
	}
}
