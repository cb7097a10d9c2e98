package ast

import (
	"strconv"
	"strings"
)

// LiteralKind is type of literal value
type LiteralKind int

// Literal kinds
const (
	StringLiteral LiteralKind = iota
	NumberLiteral
	BoolLiteral
	NullLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case StringLiteral:
		return "string"
	case NumberLiteral:
		return "number"
	case BoolLiteral:
		return "bool"
	case NullLiteral:
		return "null"
	}
	return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
}

// Literal is a scalar constant in a query
//
// Literal is comparable, so two literals could be compared with ==, comparison
// takes kind into account: String("1") != Number(1).
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

// String creates string literal
func String(s string) Literal {
	return Literal{Kind: StringLiteral, Str: s}
}

// Number creates number literal
func Number(f float64) Literal {
	return Literal{Kind: NumberLiteral, Num: f}
}

// Bool creates boolean literal
func Bool(b bool) Literal {
	return Literal{Kind: BoolLiteral, Bool: b}
}

// Null creates null literal
func Null() Literal {
	return Literal{Kind: NullLiteral}
}

// Value returns literal value as Go value: string, float64, bool or nil
func (l Literal) Value() interface{} {
	switch l.Kind {
	case StringLiteral:
		return l.Str
	case NumberLiteral:
		return l.Num
	case BoolLiteral:
		return l.Bool
	}
	return nil
}

// Compare orders literals, only numbers are ordered
//
// ok is false if literals can't be compared.
func (l Literal) Compare(other Literal) (result int, ok bool) {
	if l.Kind != NumberLiteral || other.Kind != NumberLiteral {
		return 0, false
	}
	switch {
	case l.Num < other.Num:
		return -1, true
	case l.Num > other.Num:
		return 1, true
	case l.Num == other.Num:
		return 0, true
	}
	// NaN
	return 0, false
}

// String returns literal as it is written in a query
func (l Literal) String() string {
	switch l.Kind {
	case StringLiteral:
		return quote(l.Str)
	case NumberLiteral:
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case BoolLiteral:
		return strconv.FormatBool(l.Bool)
	}
	return "null"
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
