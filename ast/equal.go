package ast

// EqualNodes compares trees structurally
//
// Nodes are equal if they are of the same type and their children are equal.
func EqualNodes(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a := a.(type) {
	case *Latest:
		b, ok := b.(*Latest)
		return ok && EqualNodes(a.Inner, b.Inner)
	case *Single:
		b, ok := b.(*Single)
		return ok && EqualNodes(a.Inner, b.Inner)
	case *Test:
		b, ok := b.(*Test)
		return ok && a.Operator == b.Operator && a.Lhs == b.Lhs && a.Rhs == b.Rhs
	case *And:
		b, ok := b.(*And)
		return ok && EqualNodes(a.Lhs, b.Lhs) && EqualNodes(a.Rhs, b.Rhs)
	case *Or:
		b, ok := b.(*Or)
		return ok && EqualNodes(a.Lhs, b.Lhs) && EqualNodes(a.Rhs, b.Rhs)
	case *Not:
		b, ok := b.(*Not)
		return ok && EqualNodes(a.Inner, b.Inner)
	}
	return false
}
