package query

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// itemType identifies the type of lex items.
type itemType int

const eof = -1

const (
	itemNull  itemType = iota
	itemError          // error occurred;
	// value is text of error
	itemEOF
	itemIdent      // name, latest, parameter, and, ...
	itemString     // 'foo', "foo"
	itemNumber     // 1, -2.5, 1e10
	itemLeftParen  // (
	itemRightParen // )
	itemComma      // ,
	itemColon      // :
	itemAnd        // &&
	itemOr         // ||
	itemNot        // !
	itemEq         // ==
	itemNe         // !=
	itemLt         // <
	itemLtEq       // <=
	itemGt         // >
	itemGtEq       // >=
)

// item represents a token returned from the scanner.
type item struct {
	typ itemType // Type, such as itemNumber.
	val string   // Value, such as "23.2", unquoted contents for strings.
	pos int      // byte offset of item start in the input
	end int      // byte offset just past the item
}

func (i item) String() string {
	switch i.typ {
	case itemString:
		return fmt.Sprintf("%#v", i.val)
	case itemEOF:
		return "<EOL>"
	case itemError:
		return fmt.Sprintf("error: %s", i.val)
	case itemNull:
		return "<NULL>"
	}
	return i.val
}

// stateFn represents the state of the scanner
// as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the scanner.
type lexer struct {
	input string    // the string being scanned.
	start int       // start position of this item.
	pos   int       // current position in the input.
	width int       // width of last rune read from input.
	items []item    // scanned items.
	err   *LexError // set when scanning stopped on an error.
	cur   int       // index of the current item for the parser.
}

// lex scans the whole input, the last item is either itemEOF or itemError.
func lex(input string) *lexer {
	l := &lexer{
		input: input,
	}
	l.run()
	return l
}

// emit passes an item back to the client.
func (l *lexer) emit(t itemType) {
	l.emitValue(t, l.input[l.start:l.pos])
}

// emitValue passes an item with value different from the source text.
func (l *lexer) emitValue(t itemType, val string) {
	l.items = append(l.items, item{typ: t, val: val, pos: l.start, end: l.pos})
	l.start = l.pos
}

// run lexes the input by executing state functions until
// the state is nil.
func (l *lexer) run() {
	for state := lexMain; state != nil; {
		state = state(l)
	}
}

// next returns the next rune in the input.
func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width =
		utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// backup steps back one rune.
// Can be called only once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// peek returns but does not consume
// the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// accept consumes the next rune if it satisfies fn.
func (l *lexer) accept(fn func(rune) bool) bool {
	if r := l.next(); r != eof && fn(r) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes runes while they satisfy fn, returns number of runes consumed.
func (l *lexer) acceptRun(fn func(rune) bool) (n int) {
	for l.accept(fn) {
		n++
	}
	return
}

// Current returns item parser is looking at
func (l *lexer) Current() item {
	return l.items[l.cur]
}

// Peek returns item following the current one
func (l *lexer) Peek() item {
	if l.cur+1 < len(l.items) {
		return l.items[l.cur+1]
	}
	return l.items[len(l.items)-1]
}

// Consume advances to the next item, last item is never consumed
func (l *lexer) Consume() {
	if l.cur+1 < len(l.items) {
		l.cur++
	}
}

// text returns source text of the item
func (l *lexer) text(i item) string {
	return l.input[i.pos:i.end]
}

// errorf records an error token and terminates the scan
// by passing back a nil pointer that will be the next
// state, terminating l.run.
func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	msg := fmt.Sprintf(format, args...)
	l.err = &LexError{Pos: position(l.input, l.start), Msg: msg}
	l.items = append(l.items, item{typ: itemError, val: msg, pos: l.start, end: l.pos})
	return nil
}

// invalidByte reports the last read rune as invalid UTF-8, positioned at the offending byte
func (l *lexer) invalidByte(where string) stateFn {
	l.start = l.pos - l.width
	return l.errorf("invalid UTF-8 byte %#x%s", l.input[l.start], where)
}

// isInvalid is true when the last read rune is not valid UTF-8
func (l *lexer) isInvalid(r rune) bool {
	return r == utf8.RuneError && l.width == 1
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lexMain(l *lexer) stateFn {
	switch r := l.next(); {
	case r == eof:
		l.emit(itemEOF)
		return nil
	case unicode.IsSpace(r):
		l.ignore()
	case r == '(':
		l.emit(itemLeftParen)
	case r == ')':
		l.emit(itemRightParen)
	case r == ',':
		l.emit(itemComma)
	case r == ':':
		l.emit(itemColon)
	case r == '&':
		if l.next() != '&' {
			l.backup()
			return l.errorf("unexpected character '&', did you mean '&&'?")
		}
		l.emit(itemAnd)
	case r == '|':
		if l.next() != '|' {
			l.backup()
			return l.errorf("unexpected character '|', did you mean '||'?")
		}
		l.emit(itemOr)
	case r == '!':
		if l.next() == '=' {
			l.emit(itemNe)
		} else {
			l.backup()
			l.emit(itemNot)
		}
	case r == '=':
		if l.next() != '=' {
			l.backup()
			return l.errorf("unexpected character '=', did you mean '=='?")
		}
		l.emit(itemEq)
	case r == '<':
		if l.next() == '=' {
			l.emit(itemLtEq)
		} else {
			l.backup()
			l.emit(itemLt)
		}
	case r == '>':
		if l.next() == '=' {
			l.emit(itemGtEq)
		} else {
			l.backup()
			l.emit(itemGt)
		}
	case r == '"' || r == '\'':
		l.backup()
		return lexString
	case r == '-' || isDigit(r):
		l.backup()
		return lexNumber
	case isIdentStart(r):
		l.backup()
		return lexIdent
	case l.isInvalid(r):
		return l.invalidByte("")
	default:
		return l.errorf("unexpected character %q", r)
	}

	return lexMain
}

// lexString scans quoted string, backslash escapes the next character
func lexString(l *lexer) stateFn {
	quote := l.next()

	var result strings.Builder
	for {
		r := l.next()
		if l.isInvalid(r) {
			return l.invalidByte(" in string literal")
		}
		switch r {
		case eof:
			return l.errorf("unterminated string literal")
		case quote:
			l.emitValue(itemString, result.String())
			return lexMain
		case '\\':
			r = l.next()
			if l.isInvalid(r) {
				return l.invalidByte(" in string literal")
			}
			switch r {
			case eof:
				return l.errorf("unterminated string literal")
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			case 'r':
				r = '\r'
			}
		}
		result.WriteRune(r)
	}
}

// lexNumber scans -?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?
func lexNumber(l *lexer) stateFn {
	if l.next() != '-' {
		l.backup()
	} else if !isDigit(l.peek()) {
		return l.errorf("unexpected character '-'")
	}

	l.acceptRun(isDigit)

	if l.accept(func(r rune) bool { return r == '.' }) {
		if l.acceptRun(isDigit) == 0 {
			return l.errorf("malformed number %q", l.input[l.start:l.pos])
		}
	}

	if l.accept(func(r rune) bool { return r == 'e' || r == 'E' }) {
		l.accept(func(r rune) bool { return r == '+' || r == '-' })
		if l.acceptRun(isDigit) == 0 {
			return l.errorf("malformed number %q", l.input[l.start:l.pos])
		}
	}

	if isIdentPart(l.peek()) {
		l.acceptRun(isIdentPart)
		return l.errorf("malformed number %q", l.input[l.start:l.pos])
	}

	l.emit(itemNumber)
	return lexMain
}

func lexIdent(l *lexer) stateFn {
	l.acceptRun(isIdentPart)
	l.emit(itemIdent)
	return lexMain
}
