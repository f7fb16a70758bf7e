package value

import (
	"strings"

	"github.com/stakvm/stak/lang/opcode"
)

// Quote is an ordered sequence of opcodes, unevaluated. It is inert data:
// looking it up by name pushes it; it runs only under an explicit
// combinator or `do`.
type Quote []opcode.Opcode

func (Quote) sealed()      {}
func (Quote) Type() string { return "quote" }
func (q Quote) String() string {
	parts := make([]string, len(q))
	for i, op := range q {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Program is a named, auto-invoked opcode sequence: looking it up by name
// runs its Body rather than pushing it as data. The `:=` assignment form is
// the only way user syntax introduces one.
type Program struct {
	Name string
	Body []opcode.Opcode
}

func (*Program) sealed()      {}
func (*Program) Type() string { return "program" }
func (p *Program) String() string {
	parts := make([]string, len(p.Body))
	for i, op := range p.Body {
		parts[i] = op.String()
	}
	return p.Name + ":= " + strings.Join(parts, " ")
}

// MacroOp is a name bound directly to a single built-in opcode; like
// Program, it auto-invokes on lookup.
type MacroOp struct {
	Name string
	Op   opcode.Opcode
}

func (MacroOp) sealed()          {}
func (MacroOp) Type() string     { return "macroop" }
func (m MacroOp) String() string { return m.Name }
