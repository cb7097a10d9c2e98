package query

import (
	"fmt"
	"strconv"

	"github.com/outpack-dev/outpack-query/ast"
)

type parser struct {
	input *lexer // the input lexer
	err   error  // error stored while parsing
}

func parse(input *lexer) (ast.Node, error) {
	p := &parser{
		input: input,
	}
	query := p.parse()
	if p.err != nil {
		return nil, p.err
	}
	return query, nil
}

// Entry into parser
func (p *parser) parse() (q ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			p.err = err
			q = nil
		}
	}()

	// a single string is a short form of id lookup
	if p.current().typ == itemString && p.input.Peek().typ == itemEOF {
		lit := p.Literal()
		return &ast.Test{Operator: ast.Equal, Lhs: ast.LookupID{}, Rhs: lit}
	}

	q = p.Query()
	if p.current().typ != itemEOF {
		p.fail("end of query")
	}
	return q
}

// current returns current item, turning lexer error into parse error
func (p *parser) current() item {
	i := p.input.Current()
	if i.typ == itemError {
		lexErr := p.input.err
		panic(&ParseError{
			Query:    p.input.input,
			Pos:      lexErr.Pos,
			Fragment: p.input.text(i),
			Msg:      lexErr.Msg,
			Err:      lexErr,
		})
	}
	return i
}

// failAt aborts parsing with error pointing to item i
func (p *parser) failAt(i item, format string, args ...interface{}) {
	panic(&ParseError{
		Query:    p.input.input,
		Pos:      position(p.input.input, i.pos),
		Fragment: p.input.text(i),
		Msg:      fmt.Sprintf(format, args...),
	})
}

// fail aborts parsing on unexpected current item
func (p *parser) fail(expecting string) {
	i := p.current()
	if i.typ == itemEOF {
		p.failAt(i, "unexpected end of query: expecting %s", expecting)
	}
	p.failAt(i, "unexpected token %s: expecting %s", i, expecting)
}

func (p *parser) isKeyword(t itemType, keyword string) bool {
	i := p.current()
	return i.typ == t || (i.typ == itemIdent && i.val == keyword)
}

// Query := A | Query ('or' | '||') A
func (p *parser) Query() ast.Node {
	q := p.A()
	for p.isKeyword(itemOr, "or") {
		p.input.Consume()
		q = &ast.Or{Lhs: q, Rhs: p.A()}
	}
	return q
}

// A := B | A ('and' | '&&') B
func (p *parser) A() ast.Node {
	q := p.B()
	for p.isKeyword(itemAnd, "and") {
		p.input.Consume()
		q = &ast.And{Lhs: q, Rhs: p.B()}
	}
	return q
}

// B := C | ('not' | '!') B
func (p *parser) B() ast.Node {
	if p.isKeyword(itemNot, "not") {
		p.input.Consume()
		return &ast.Not{Inner: p.B()}
	}
	return p.C()
}

// C := '(' Query ')' | D
func (p *parser) C() ast.Node {
	if p.current().typ == itemLeftParen {
		p.input.Consume()
		q := p.Query()
		if p.current().typ != itemRightParen {
			p.fail("')'")
		}
		p.input.Consume()
		return q
	}
	return p.D()
}

// D := <call> | <lookup> <operator> <literal> | <literal> <operator> <lookup>
func (p *parser) D() ast.Node {
	i := p.current()

	switch {
	case i.typ == itemIdent && (i.val == "latest" || i.val == "single"):
		return p.Call()
	case i.typ == itemIdent && p.input.Peek().typ == itemLeftParen:
		p.failAt(i, "unknown function %s", i.val)
	case p.isLiteral():
		lit := p.Literal()
		operator := p.Operator()
		if p.isLiteral() {
			p.fail("lookup")
		}
		lookup := p.Lookup()
		return &ast.Test{Operator: operator.Mirror(), Lhs: lookup, Rhs: lit}
	case p.isLookup():
		lookup := p.Lookup()
		operator := p.Operator()
		if p.isLookup() {
			p.fail("literal")
		}
		return &ast.Test{Operator: operator, Lhs: lookup, Rhs: p.Literal()}
	}

	p.fail("lookup, function or literal")
	return nil
}

// call := 'latest' | <function> '(' [Query (',' Query)*] ')'
// function := 'latest' | 'single'
func (p *parser) Call() ast.Node {
	name := p.current()
	p.input.Consume()

	if p.current().typ != itemLeftParen {
		if name.val == "latest" {
			return &ast.Latest{}
		}
		p.fail("'('")
	}
	p.input.Consume()

	var args []ast.Node
	if p.current().typ != itemRightParen {
		args = append(args, p.Query())
		for p.current().typ == itemComma {
			p.input.Consume()
			args = append(args, p.Query())
		}
		if p.current().typ != itemRightParen {
			p.fail("',' or ')'")
		}
	}
	p.input.Consume()

	switch name.val {
	case "latest":
		if len(args) > 1 {
			p.failAt(name, "latest accepts at most one argument, got %d", len(args))
		}
		if len(args) == 1 {
			return &ast.Latest{Inner: args[0]}
		}
		return &ast.Latest{}
	case "single":
		if len(args) != 1 {
			p.failAt(name, "single requires exactly one argument, got %d", len(args))
		}
		return &ast.Single{Inner: args[0]}
	}

	p.failAt(name, "unknown function %s", name.val)
	return nil
}

func (p *parser) isLookup() bool {
	i := p.current()
	if i.typ != itemIdent {
		return false
	}
	switch i.val {
	case "name", "id", "parameter", "this", "environment":
		return true
	}
	return false
}

// lookup := 'name' | 'id' | ('parameter' | 'this' | 'environment') ':' <identifier>
func (p *parser) Lookup() ast.Lookup {
	if !p.isLookup() {
		p.fail("lookup")
	}
	i := p.current()
	p.input.Consume()

	switch i.val {
	case "name":
		return ast.LookupName{}
	case "id":
		return ast.LookupID{}
	}

	if p.current().typ != itemColon {
		p.fail("':'")
	}
	p.input.Consume()

	field := p.current()
	if field.typ != itemIdent {
		p.fail(i.val + " name")
	}
	p.input.Consume()

	switch i.val {
	case "parameter":
		return ast.LookupParameter{Name: field.val}
	case "this":
		return ast.LookupThis{Name: field.val}
	}
	return ast.LookupEnvironment{Name: field.val}
}

// operator := '==' | '!=' | '<' | '<=' | '>' | '>='
func (p *parser) Operator() ast.Operator {
	i := p.current()
	switch i.typ {
	case itemEq, itemNe, itemLt, itemLtEq, itemGt, itemGtEq:
		operator, ok := ast.OperatorByLexeme(i.val)
		if !ok {
			panic(fmt.Sprintf("unable to map token %s to operator", i))
		}
		p.input.Consume()
		return operator
	}
	p.fail("comparison operator")
	return 0
}

func (p *parser) isLiteral() bool {
	i := p.current()
	switch i.typ {
	case itemString, itemNumber:
		return true
	case itemIdent:
		return i.val == "true" || i.val == "false" || i.val == "null"
	}
	return false
}

// literal := <string> | <number> | 'true' | 'false' | 'null'
func (p *parser) Literal() ast.Literal {
	if !p.isLiteral() {
		p.fail("literal")
	}
	i := p.current()
	p.input.Consume()

	switch i.typ {
	case itemString:
		return ast.String(i.val)
	case itemNumber:
		f, err := strconv.ParseFloat(i.val, 64)
		if err != nil {
			p.failAt(i, "number %s is out of range", i.val)
		}
		return ast.Number(f)
	}

	switch i.val {
	case "true":
		return ast.Bool(true)
	case "false":
		return ast.Bool(false)
	}
	return ast.Null()
}
