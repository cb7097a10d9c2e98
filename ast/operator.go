package ast

import "fmt"

// Operator is comparison operator of a Test
type Operator int

// Supported comparison operators
const (
	Equal Operator = iota
	NotEqual
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
)

var operatorLexemes = [...]string{
	Equal:          "==",
	NotEqual:       "!=",
	LessThan:       "<",
	LessOrEqual:    "<=",
	GreaterThan:    ">",
	GreaterOrEqual: ">=",
}

var operatorNames = [...]string{
	Equal:          "Equal",
	NotEqual:       "NotEqual",
	LessThan:       "LessThan",
	LessOrEqual:    "LessOrEqual",
	GreaterThan:    "GreaterThan",
	GreaterOrEqual: "GreaterOrEqual",
}

// Operators lists all the operators in declaration order
var Operators = []Operator{Equal, NotEqual, LessThan, LessOrEqual, GreaterThan, GreaterOrEqual}

func (op Operator) valid() bool {
	return op >= Equal && op <= GreaterOrEqual
}

// String returns operator as it is written in a query
func (op Operator) String() string {
	if !op.valid() {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorLexemes[op]
}

// Name returns symbolic name of operator, e.g. "LessThan"
func (op Operator) Name() string {
	if !op.valid() {
		return fmt.Sprintf("Operator(%d)", int(op))
	}
	return operatorNames[op]
}

// Mirror returns operator which gives the same result when operands are swapped:
// a < b is the same as b > a
func (op Operator) Mirror() Operator {
	switch op {
	case LessThan:
		return GreaterThan
	case LessOrEqual:
		return GreaterOrEqual
	case GreaterThan:
		return LessThan
	case GreaterOrEqual:
		return LessOrEqual
	}
	return op
}

// OperatorByLexeme maps query lexeme to Operator
func OperatorByLexeme(lexeme string) (Operator, bool) {
	for _, op := range Operators {
		if operatorLexemes[op] == lexeme {
			return op, true
		}
	}
	return 0, false
}

// OperatorByName maps operator name (as returned by Name) to Operator
func OperatorByName(name string) (Operator, bool) {
	for _, op := range Operators {
		if operatorNames[op] == name {
			return op, true
		}
	}
	return 0, false
}
