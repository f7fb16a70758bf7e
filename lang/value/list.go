package value

import "strings"

// List is an ordered, heterogeneous sequence of Value.
type List struct {
	Elems []Value
}

func (*List) sealed()      {}
func (*List) Type() string { return "list" }

// NewList wraps elems as a List. The caller should not mutate elems after
// the call; use Clone to get an independent copy.
func NewList(elems []Value) *List { return &List{Elems: elems} }

func (l *List) clone() *List {
	cp := make([]Value, len(l.Elems))
	for i, e := range l.Elems {
		cp[i] = Clone(e)
	}
	return &List{Elems: cp}
}

func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
