package query

import (
	"github.com/outpack-dev/outpack-query/ast"
	"github.com/pkg/errors"
	. "gopkg.in/check.v1"
)

type SyntaxSuite struct {
}

var _ = Suite(&SyntaxSuite{})

func fooByName() *ast.Test {
	return &ast.Test{Operator: ast.Equal, Lhs: ast.LookupName{}, Rhs: ast.String("foo")}
}

func (s *SyntaxSuite) TestParsing(c *C) {
	for _, t := range []struct {
		query    string
		expected ast.Node
	}{
		{"latest", &ast.Latest{}},
		{"latest()", &ast.Latest{}},
		{" latest ( ) ", &ast.Latest{}},
		{"latest(name == 'foo')", &ast.Latest{Inner: fooByName()}},
		{"name == 'foo'", fooByName()},
		{`name == "foo"`, fooByName()},
		{"'foo' == name", fooByName()},
		{"name == 'a' and id == 'b'", &ast.And{
			Lhs: &ast.Test{Operator: ast.Equal, Lhs: ast.LookupName{}, Rhs: ast.String("a")},
			Rhs: &ast.Test{Operator: ast.Equal, Lhs: ast.LookupID{}, Rhs: ast.String("b")},
		}},
		{"not (name == 'foo')", &ast.Not{Inner: fooByName()}},
		{"!name == 'foo'", &ast.Not{Inner: fooByName()}},
		{"not not latest", &ast.Not{Inner: &ast.Not{Inner: &ast.Latest{}}}},
		{"((name == 'foo'))", fooByName()},
		{"single(name == 'foo')", &ast.Single{Inner: fooByName()}},
		{"parameter:x < 3", &ast.Test{Operator: ast.LessThan, Lhs: ast.LookupParameter{Name: "x"}, Rhs: ast.Number(3)}},
		{"3 < parameter:x", &ast.Test{Operator: ast.GreaterThan, Lhs: ast.LookupParameter{Name: "x"}, Rhs: ast.Number(3)}},
		{"parameter:x <= -0.5", &ast.Test{Operator: ast.LessOrEqual, Lhs: ast.LookupParameter{Name: "x"}, Rhs: ast.Number(-0.5)}},
		{"parameter:x >= 1e3", &ast.Test{Operator: ast.GreaterOrEqual, Lhs: ast.LookupParameter{Name: "x"}, Rhs: ast.Number(1000)}},
		{"parameter : flag != true", &ast.Test{Operator: ast.NotEqual, Lhs: ast.LookupParameter{Name: "flag"}, Rhs: ast.Bool(true)}},
		{"parameter:flag == false", &ast.Test{Operator: ast.Equal, Lhs: ast.LookupParameter{Name: "flag"}, Rhs: ast.Bool(false)}},
		{"this:x > 2", &ast.Test{Operator: ast.GreaterThan, Lhs: ast.LookupThis{Name: "x"}, Rhs: ast.Number(2)}},
		{"environment:x == null", &ast.Test{Operator: ast.Equal, Lhs: ast.LookupEnvironment{Name: "x"}, Rhs: ast.Null()}},
		{"parameter:latest == 1", &ast.Test{Operator: ast.Equal, Lhs: ast.LookupParameter{Name: "latest"}, Rhs: ast.Number(1)}},
		{"parameter:a.b == 1", &ast.Test{Operator: ast.Equal, Lhs: ast.LookupParameter{Name: "a.b"}, Rhs: ast.Number(1)}},
		{`"20230427-150828-68772cee"`, &ast.Test{Operator: ast.Equal, Lhs: ast.LookupID{}, Rhs: ast.String("20230427-150828-68772cee")}},
		{`id == "it's"`, &ast.Test{Operator: ast.Equal, Lhs: ast.LookupID{}, Rhs: ast.String("it's")}},
		{"name == '1'", &ast.Test{Operator: ast.Equal, Lhs: ast.LookupName{}, Rhs: ast.String("1")}},
	} {
		q, err := Parse(t.query)
		c.Assert(err, IsNil, Commentf("query %q", t.query))
		c.Check(q, DeepEquals, t.expected, Commentf("query %q", t.query))
		c.Check(ast.EqualNodes(q, t.expected), Equals, true, Commentf("query %q", t.query))
	}
}

func (s *SyntaxSuite) TestPrecedence(c *C) {
	a := &ast.Test{Operator: ast.Equal, Lhs: ast.LookupName{}, Rhs: ast.String("a")}
	b := &ast.Test{Operator: ast.Equal, Lhs: ast.LookupName{}, Rhs: ast.String("b")}
	d := &ast.Test{Operator: ast.Equal, Lhs: ast.LookupName{}, Rhs: ast.String("d")}

	q, err := Parse("name == 'a' or name == 'b' and name == 'd'")
	c.Assert(err, IsNil)
	c.Check(q, DeepEquals, &ast.Or{Lhs: a, Rhs: &ast.And{Lhs: b, Rhs: d}})

	q, err = Parse("name == 'a' and name == 'b' or name == 'd'")
	c.Assert(err, IsNil)
	c.Check(q, DeepEquals, &ast.Or{Lhs: &ast.And{Lhs: a, Rhs: b}, Rhs: d})

	q, err = Parse("name == 'a' || name == 'b' || name == 'd'")
	c.Assert(err, IsNil)
	c.Check(q, DeepEquals, &ast.Or{Lhs: &ast.Or{Lhs: a, Rhs: b}, Rhs: d})

	q, err = Parse("name == 'a' && name == 'b' && name == 'd'")
	c.Assert(err, IsNil)
	c.Check(q, DeepEquals, &ast.And{Lhs: &ast.And{Lhs: a, Rhs: b}, Rhs: d})

	q, err = Parse("name == 'a' and (name == 'b' or name == 'd')")
	c.Assert(err, IsNil)
	c.Check(q, DeepEquals, &ast.And{Lhs: a, Rhs: &ast.Or{Lhs: b, Rhs: d}})

	q, err = Parse("not name == 'a' and name == 'b'")
	c.Assert(err, IsNil)
	c.Check(q, DeepEquals, &ast.And{Lhs: &ast.Not{Inner: a}, Rhs: b})

	q, err = Parse("latest(name == 'a' or name == 'b') and not single(name == 'd')")
	c.Assert(err, IsNil)
	c.Check(q, DeepEquals, &ast.And{
		Lhs: &ast.Latest{Inner: &ast.Or{Lhs: a, Rhs: b}},
		Rhs: &ast.Not{Inner: &ast.Single{Inner: d}},
	})
}

func (s *SyntaxSuite) TestDeterministic(c *C) {
	for _, query := range []string{
		"latest", "latest()", "latest(name == 'foo')", "name == 'foo'",
		"name == 'a' and id == 'b'", "not (name == 'foo')",
	} {
		q1, err := Parse(query)
		c.Assert(err, IsNil)
		q2, err := Parse(query)
		c.Assert(err, IsNil)
		c.Check(ast.EqualNodes(q1, q2), Equals, true)

		// canonical text parses back to the same tree
		q3, err := Parse(q1.String())
		c.Assert(err, IsNil, Commentf("canonical %q", q1.String()))
		c.Check(ast.EqualNodes(q1, q3), Equals, true)
	}
}

func (s *SyntaxSuite) TestParsingErrors(c *C) {
	for _, t := range []struct {
		query string
		err   string
	}{
		{"", "expected query at 1:1: unexpected end of query: expecting lookup, function or literal"},
		{"   ", "expected query at 1:4: unexpected end of query: expecting lookup, function or literal"},
		{"foo", "expected query at 1:1: unexpected token foo: expecting lookup, function or literal"},
		{"name", "expected query at 1:5: unexpected end of query: expecting comparison operator"},
		{"name ==", "expected query at 1:8: unexpected end of query: expecting literal"},
		{"(name == 'foo'", "expected query at 1:15: unexpected end of query: expecting '\\)'"},
		{"name == 'foo')", "expected query at 1:14: unexpected token \\): expecting end of query"},
		{"name == 'foo' and", "expected query at 1:18: unexpected end of query: expecting lookup, function or literal"},
		{"name == 'foo' or or", "expected query at 1:18: unexpected token or: expecting lookup, function or literal"},
		{"name == id", "expected query at 1:9: unexpected token id: expecting literal"},
		{"'a' == 'b'", "expected query at 1:8: unexpected token \"b\": expecting lookup"},
		{"name 'foo'", "expected query at 1:6: unexpected token \"foo\": expecting comparison operator"},
		{"parameter == 1", "expected query at 1:11: unexpected token ==: expecting ':'"},
		{"parameter: == 1", "expected query at 1:12: unexpected token ==: expecting parameter name"},
		{"foo(name == 'x')", "expected query at 1:1: unknown function foo"},
		{"latest(name == 'a', name == 'b')", "expected query at 1:1: latest accepts at most one argument, got 2"},
		{"single()", "expected query at 1:1: single requires exactly one argument, got 0"},
		{"single", "expected query at 1:7: unexpected end of query: expecting '\\('"},
		{"latest(name == 'a' name == 'b')", "expected query at 1:20: unexpected token name: expecting ',' or '\\)'"},
		{"latest name == 'a'", "expected query at 1:8: unexpected token name: expecting end of query"},
		{"'foo'", ""},
		{"'foo' 'bar'", "expected query at 1:7: unexpected token \"bar\": expecting comparison operator"},
		{"name == 'foo", "expected query at 1:9: unterminated string literal"},
		{"name = 'foo'", "expected query at 1:6: unexpected character '=', did you mean '=='\\?"},
		{"parameter:x == 1e999", "expected query at 1:16: number 1e999 is out of range"},
	} {
		_, err := Parse(t.query)
		if t.err == "" {
			c.Check(err, IsNil)
			continue
		}
		c.Check(err, ErrorMatches, t.err, Commentf("query %q", t.query))
		c.Check(err, ErrorMatches, "expected query.*")
	}
}

func (s *SyntaxSuite) TestErrorDetails(c *C) {
	_, err := Parse("latest(name == 'a') and\n  foo == 'b'")
	c.Assert(err, NotNil)

	var parseErr *ParseError
	c.Assert(errors.As(err, &parseErr), Equals, true)
	c.Check(parseErr.Pos, Equals, Position{Offset: 26, Line: 2, Column: 3})
	c.Check(parseErr.Fragment, Equals, "foo")
	c.Check(parseErr.Line(), Equals, "  foo == 'b'")
	c.Check(parseErr.FragmentWidth(), Equals, 3)
	c.Check(parseErr.Err, IsNil)

	_, err = Parse("name == 'unterminated")
	c.Assert(errors.As(err, &parseErr), Equals, true)
	c.Check(parseErr.Fragment, Equals, "'unterminated")
	c.Check(parseErr.Line(), Equals, "name == 'unterminated")

	var lexErr *LexError
	c.Assert(errors.As(err, &lexErr), Equals, true)
	c.Check(lexErr.Pos, Equals, Position{Offset: 8, Line: 1, Column: 9})
	c.Check(lexErr.Msg, Equals, "unterminated string literal")

	_, err = Parse("")
	c.Assert(errors.As(err, &parseErr), Equals, true)
	c.Check(parseErr.Fragment, Equals, "")
	c.Check(parseErr.Line(), Equals, "")
}

func (s *SyntaxSuite) TestParseErrorBeforeLexError(c *C) {
	// syntax error is reported before the lexer got to the bad character
	_, err := Parse("name name == #")
	c.Check(err, ErrorMatches, "expected query at 1:6: unexpected token name: expecting comparison operator")
}

func (s *SyntaxSuite) TestMustParse(c *C) {
	c.Check(MustParse("latest"), DeepEquals, &ast.Latest{})
	c.Check(func() { MustParse("foo") }, PanicMatches, "expected query.*")
}

func (s *SyntaxSuite) TestIncomplete(c *C) {
	for _, q := range []string{"", "name", "name ==", "latest(", "name == 'a' and ", "(name == 'a'", "single"} {
		_, err := Parse(q)
		c.Check(Incomplete(err), Equals, true, Commentf("query: %q", q))
	}

	for _, q := range []string{"foo", "name == 'a')", "name == 'unterminated", "name == id"} {
		_, err := Parse(q)
		c.Check(Incomplete(err), Equals, false, Commentf("query: %q", q))
	}

	c.Check(Incomplete(nil), Equals, false)
	c.Check(Incomplete(errors.New("other")), Equals, false)
	c.Check(Incomplete(errors.Wrap(mustFail("latest("), "line 1")), Equals, true)
}

// mustFail returns error of parsing invalid query
func mustFail(q string) error {
	_, err := Parse(q)
	if err == nil {
		panic("query is valid: " + q)
	}
	return err
}
