// Package ast defines syntax tree of outpack queries
package ast

// Node is a node of query syntax tree
//
// Set of nodes is closed: *Latest, *Single, *Test, *And, *Or, *Not.
// Trees are immutable after construction and every node owns its children.
type Node interface {
	// Accept calls the Visitor method matching node type
	Accept(v Visitor) error
	// String returns query text which parses back to an equal tree
	String() string

	node()
}

// Latest selects the most recent packet, optionally restricted by Inner
type Latest struct {
	Inner Node
}

// Single asserts that Inner selects exactly one packet
type Single struct {
	Inner Node
}

// Test is Lhs Operator Rhs
type Test struct {
	Operator Operator
	Lhs      Lookup
	Rhs      Literal
}

// And is Lhs and Rhs
type And struct {
	Lhs, Rhs Node
}

// Or is Lhs or Rhs
type Or struct {
	Lhs, Rhs Node
}

// Not is not Inner
type Not struct {
	Inner Node
}

func (*Latest) node() {}
func (*Single) node() {}
func (*Test) node()   {}
func (*And) node()    {}
func (*Or) node()     {}
func (*Not) node()    {}

// Check interface
var (
	_ Node = (*Latest)(nil)
	_ Node = (*Single)(nil)
	_ Node = (*Test)(nil)
	_ Node = (*And)(nil)
	_ Node = (*Or)(nil)
	_ Node = (*Not)(nil)
)
