package query

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Position is location in the query text
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number in runes, starting at 1
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// position converts byte offset into Position
func position(input string, offset int) Position {
	if offset > len(input) {
		offset = len(input)
	}
	pos := Position{Offset: offset, Line: 1, Column: 1}
	for _, r := range input[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// LexError is reported when query text can't be split into tokens:
// unexpected character, unterminated string or malformed number
type LexError struct {
	Pos Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

// ParseError is returned by Parse for any invalid query
//
// If the query failed on the lexical level, Err holds *LexError.
type ParseError struct {
	Query    string   // full query text
	Pos      Position // where the problem starts
	Fragment string   // offending part of the query, empty at the end of query
	Msg      string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected query at %s: %s", e.Pos, e.Msg)
}

// Unwrap returns underlying error, if any
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Line returns query line where error happened
func (e *ParseError) Line() string {
	start := e.Pos.Offset
	for start > 0 && e.Query[start-1] != '\n' {
		start--
	}
	end := e.Pos.Offset
	for end < len(e.Query) && e.Query[end] != '\n' {
		end++
	}
	return e.Query[start:end]
}

// FragmentWidth returns width of the fragment in runes, limited to the error line
func (e *ParseError) FragmentWidth() int {
	fragment := e.Fragment
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '\n' {
			fragment = fragment[:i]
			break
		}
	}
	return utf8.RuneCountInString(fragment)
}

// Incomplete reports whether err is a parse error caused by the query ending too early,
// so that more text could make the query valid
func Incomplete(err error) bool {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return false
	}

	return parseErr.Err == nil && parseErr.Pos.Offset == len(parseErr.Query)
}
