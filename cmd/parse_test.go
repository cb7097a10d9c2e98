package cmd

import (
	"strings"

	check "gopkg.in/check.v1"
)

type ParseSuite struct {
	CmdSuite
}

var _ = check.Suite(&ParseSuite{})

func (s *ParseSuite) TestParse(c *check.C) {
	c.Check(s.run("parse", "latest"), check.Equals, 0)
	c.Check(s.stdout.String(), check.Equals, "latest\n")
	c.Check(s.stderr.String(), check.Equals, "")

	c.Check(s.run("parse", "name == 'a' && (id == 'b' || !this:x == true)"), check.Equals, 0)
	c.Check(s.stdout.String(), check.Equals, "name == \"a\" and (id == \"b\" or not (this:x == true))\n")
}

func (s *ParseSuite) TestParseJoinsArguments(c *check.C) {
	c.Check(s.run("parse", "parameter:x", ">=", "1.5"), check.Equals, 0)
	c.Check(s.stdout.String(), check.Equals, "parameter:x >= 1.5\n")
}

func (s *ParseSuite) TestParseFormat(c *check.C) {
	c.Check(s.run("parse", "-format=repr", "name == 'foo'"), check.Equals, 0)
	c.Check(s.stdout.String(), check.Equals, "Test(operator=Equal, lhs=LookupName(), rhs=Literal(value=\"foo\"))\n")

	c.Check(s.run("parse", "-format=json", "latest"), check.Equals, 0)
	c.Check(strings.Contains(s.stdout.String(), `"type": "Latest"`), check.Equals, true)

	c.Check(s.run("parse", "-format=yaml", "latest"), check.Equals, 0)
	c.Check(s.stdout.String(), check.Equals, "inner: null\ntype: Latest\n")

	c.Check(s.run("parse", "-format=xml", "latest"), check.Equals, 1)
	c.Check(s.stderr.String(), check.Matches, `ERROR: unknown output format "xml", .*\n`)
}

func (s *ParseSuite) TestParseInvalid(c *check.C) {
	c.Check(s.run("parse", "name == id"), check.Equals, 1)
	c.Check(s.stdout.String(), check.Equals, "")
	c.Check(s.stderr.String(), check.Equals, ""+
		"expected query at 1:9: unexpected token id: expecting literal\n"+
		"    name == id\n"+
		"            ^~\n"+
		"ERROR: unable to parse query\n")
}

func (s *ParseSuite) TestParseNoQuery(c *check.C) {
	c.Check(s.run("parse"), check.Equals, 2)
}

func (s *ParseSuite) TestParseQueryFlag(c *check.C) {
	c.Check(s.run("parse", "-query=latest(name == 'x')"), check.Equals, 0)
	c.Check(s.stdout.String(), check.Equals, "latest(name == \"x\")\n")

	filename := s.writeFile(c, "query.txt", "parameter:a == 1 &&\n  parameter:b == 2\n")
	c.Check(s.run("parse", "-query=@"+filename), check.Equals, 0)
	c.Check(s.stdout.String(), check.Equals, "parameter:a == 1 and parameter:b == 2\n")

	c.Check(s.run("parse", "-query=@"+filename, "latest"), check.Equals, 1)
	c.Check(s.stderr.String(), check.Equals, "ERROR: query could be passed either with -query or as arguments\n")

	c.Check(s.run("parse", "-query=@"+filename+".missing"), check.Equals, 1)
	c.Check(s.stderr.String(), check.Matches, "ERROR: unable to read query from .*query.txt.missing: open .*\n")
}
