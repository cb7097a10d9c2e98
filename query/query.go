// Package query implements parser for outpack query language
package query

import (
	"github.com/outpack-dev/outpack-query/ast"
)

/*

  Query language selecting packets by their metadata:

  Query := A | Query ('or' | '||') A
  A := B | A ('and' | '&&') B
  B := C | ('not' | '!') B
  C := '(' Query ')' | D
  D := <call> | <lookup> <operator> <literal> | <literal> <operator> <lookup>
  call := 'latest' | 'latest' '(' [Query] ')' | 'single' '(' Query ')'
  lookup := 'name' | 'id' | 'parameter:'<name> | 'this:'<name> | 'environment:'<name>
  operator := '==' | '!=' | '<' | '<=' | '>' | '>='
  literal := <string> | <number> | 'true' | 'false' | 'null'

  A query consisting of single string literal is a short form of 'id == <string>'.
*/

// Parse parses input query into syntax tree
//
// Any error returned is *ParseError.
func Parse(query string) (ast.Node, error) {
	return parse(lex(query))
}

// MustParse is like Parse, but panics on error
func MustParse(query string) ast.Node {
	result, err := Parse(query)
	if err != nil {
		panic(err)
	}
	return result
}
