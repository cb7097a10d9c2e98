package ast

import "fmt"

// Visitor has a method per Node type
//
// Adding new node type adds a method here, so every implementation
// has to be updated to handle it.
type Visitor interface {
	VisitLatest(n *Latest) error
	VisitSingle(n *Single) error
	VisitTest(n *Test) error
	VisitAnd(n *And) error
	VisitOr(n *Or) error
	VisitNot(n *Not) error
}

// Accept calls v.VisitLatest
func (n *Latest) Accept(v Visitor) error { return v.VisitLatest(n) }

// Accept calls v.VisitSingle
func (n *Single) Accept(v Visitor) error { return v.VisitSingle(n) }

// Accept calls v.VisitTest
func (n *Test) Accept(v Visitor) error { return v.VisitTest(n) }

// Accept calls v.VisitAnd
func (n *And) Accept(v Visitor) error { return v.VisitAnd(n) }

// Accept calls v.VisitOr
func (n *Or) Accept(v Visitor) error { return v.VisitOr(n) }

// Accept calls v.VisitNot
func (n *Not) Accept(v Visitor) error { return v.VisitNot(n) }

// Children returns direct children of the node, left to right
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Latest:
		if n.Inner == nil {
			return nil
		}
		return []Node{n.Inner}
	case *Single:
		return []Node{n.Inner}
	case *Test:
		return nil
	case *And:
		return []Node{n.Lhs, n.Rhs}
	case *Or:
		return []Node{n.Lhs, n.Rhs}
	case *Not:
		return []Node{n.Inner}
	}
	panic(fmt.Sprintf("unexpected node %T", n))
}

// Walk traverses tree depth-first, calling fn before visiting children
//
// If fn returns false, children of the node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}
