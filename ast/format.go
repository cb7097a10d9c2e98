package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// binding strength of the node when rendered as text
const (
	precOr = iota + 1
	precAnd
	precNot
	precPrimary
)

func precedence(n Node) int {
	switch n.(type) {
	case *Or:
		return precOr
	case *And:
		return precAnd
	case *Not:
		return precNot
	}
	return precPrimary
}

// wrap puts node in parens if it binds weaker than required
func wrap(n Node, min int) string {
	if precedence(n) < min {
		return "(" + n.String() + ")"
	}
	return n.String()
}

func (n *Latest) String() string {
	if n.Inner == nil {
		return "latest"
	}
	return "latest(" + n.Inner.String() + ")"
}

func (n *Single) String() string {
	return "single(" + n.Inner.String() + ")"
}

func (n *Test) String() string {
	return fmt.Sprintf("%s %s %s", n.Lhs, n.Operator, n.Rhs)
}

func (n *And) String() string {
	return wrap(n.Lhs, precAnd) + " and " + wrap(n.Rhs, precAnd+1)
}

func (n *Or) String() string {
	return wrap(n.Lhs, precOr) + " or " + wrap(n.Rhs, precOr+1)
}

func (n *Not) String() string {
	switch n.Inner.(type) {
	case *Not, *Latest, *Single:
		return "not " + n.Inner.String()
	}
	return "not (" + n.Inner.String() + ")"
}

// Repr returns debugging representation of the tree, e.g.:
//
//	Test(operator=Equal, lhs=LookupName(), rhs=Literal(value="foo"))
func Repr(n Node) string {
	var b strings.Builder
	repr(&b, n)
	return b.String()
}

func repr(b *strings.Builder, n Node) {
	field := func(name string, child Node, last bool) {
		b.WriteString(name)
		b.WriteByte('=')
		repr(b, child)
		if !last {
			b.WriteString(", ")
		}
	}

	switch n := n.(type) {
	case nil:
		b.WriteString("None")
	case *Latest:
		b.WriteString("Latest(")
		field("inner", n.Inner, true)
		b.WriteByte(')')
	case *Single:
		b.WriteString("Single(")
		field("inner", n.Inner, true)
		b.WriteByte(')')
	case *Test:
		fmt.Fprintf(b, "Test(operator=%s, lhs=%s, rhs=%s)", n.Operator.Name(), ReprLookup(n.Lhs), ReprLiteral(n.Rhs))
	case *And:
		b.WriteString("And(")
		field("lhs", n.Lhs, false)
		field("rhs", n.Rhs, true)
		b.WriteByte(')')
	case *Or:
		b.WriteString("Or(")
		field("lhs", n.Lhs, false)
		field("rhs", n.Rhs, true)
		b.WriteByte(')')
	case *Not:
		b.WriteString("Not(")
		field("inner", n.Inner, true)
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("unexpected node %T", n))
	}
}

// ReprLookup returns debugging representation of the lookup
func ReprLookup(l Lookup) string {
	switch l := l.(type) {
	case LookupName:
		return "LookupName()"
	case LookupID:
		return "LookupId()"
	case LookupParameter:
		return "LookupParameter(name=" + strconv.Quote(l.Name) + ")"
	case LookupThis:
		return "LookupThis(name=" + strconv.Quote(l.Name) + ")"
	case LookupEnvironment:
		return "LookupEnvironment(name=" + strconv.Quote(l.Name) + ")"
	}
	return fmt.Sprintf("%#v", l)
}

// ReprLiteral returns debugging representation of the literal
func ReprLiteral(l Literal) string {
	if l.Kind == NullLiteral {
		return "Literal(value=None)"
	}
	return "Literal(value=" + l.String() + ")"
}
