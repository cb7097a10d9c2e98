package cmd

import (
	"bytes"

	"github.com/outpack-dev/outpack-query/console"
	"github.com/outpack-dev/outpack-query/output"
	check "gopkg.in/check.v1"
)

type ShellSuite struct {
	stdout, stderr bytes.Buffer
	printer        *console.Printer
	session        *shellSession
}

var _ = check.Suite(&ShellSuite{})

func (s *ShellSuite) SetUpTest(c *check.C) {
	s.stdout.Reset()
	s.stderr.Reset()

	s.printer = console.NewPrinter(&s.stdout, &s.stderr, false)
	s.printer.Start()

	s.session = &shellSession{printer: s.printer, format: output.Text}
}

func (s *ShellSuite) TearDownTest(c *check.C) {
	s.printer.Shutdown()
}

func (s *ShellSuite) feed(lines ...string) bool {
	result := true
	for _, line := range lines {
		result = s.session.Feed(line)
	}
	s.printer.Flush()
	return result
}

func (s *ShellSuite) TestQuery(c *check.C) {
	c.Check(s.feed("latest(name=='a')"), check.Equals, true)
	c.Check(s.stdout.String(), check.Equals, "latest(name == \"a\")\n")
	c.Check(s.session.Prompt("query> "), check.Equals, "query> ")
}

func (s *ShellSuite) TestMultilineQuery(c *check.C) {
	c.Check(s.feed("latest(name == 'a' and"), check.Equals, true)
	c.Check(s.stdout.String(), check.Equals, "")
	c.Check(s.session.Prompt("query> "), check.Equals, "...... ")

	c.Check(s.feed("  id == 'b')"), check.Equals, true)
	c.Check(s.stdout.String(), check.Equals, "latest(name == \"a\" and id == \"b\")\n")
	c.Check(s.session.Prompt("query> "), check.Equals, "query> ")
}

func (s *ShellSuite) TestIncompleteFinishedByEmptyLine(c *check.C) {
	s.feed("name ==", "")
	c.Check(s.stdout.String(), check.Equals, "")
	c.Check(s.stderr.String(), check.Equals, ""+
		"expected query at 1:8: unexpected end of query: expecting literal\n"+
		"    name ==\n"+
		"           ^\n")
	c.Check(s.session.Reset(), check.Equals, false)
}

func (s *ShellSuite) TestInvalidQuery(c *check.C) {
	s.feed("foo")
	c.Check(s.stderr.String(), check.Equals, ""+
		"expected query at 1:1: unexpected token foo: expecting lookup, function or literal\n"+
		"    foo\n"+
		"    ^~~\n")

	// shell is ready for the next query
	s.stderr.Reset()
	s.feed("latest")
	c.Check(s.stdout.String(), check.Equals, "latest\n")
}

func (s *ShellSuite) TestReset(c *check.C) {
	s.feed("single(")
	c.Check(s.session.Reset(), check.Equals, true)
	c.Check(s.session.Reset(), check.Equals, false)

	s.feed("latest")
	c.Check(s.stdout.String(), check.Equals, "latest\n")
}

func (s *ShellSuite) TestExit(c *check.C) {
	c.Check(s.feed(""), check.Equals, true)
	c.Check(s.feed("  exit "), check.Equals, false)
	c.Check(s.feed("quit"), check.Equals, false)
}

func (s *ShellSuite) TestCommands(c *check.C) {
	s.feed(":format")
	c.Check(s.stdout.String(), check.Equals, "text\n")

	s.feed(":format repr", "name == 'x'")
	c.Check(s.stdout.String(), check.Equals, "text\nTest(operator=Equal, lhs=LookupName(), rhs=Literal(value=\"x\"))\n")

	s.feed(":format msgpack", ":format xml", ":nope")
	c.Check(s.stderr.String(), check.Equals, ""+
		"ERROR: format msgpack can't be displayed in shell\n"+
		"ERROR: unknown output format \"xml\", supported formats: text, repr, json, yaml, msgpack\n"+
		"ERROR: unknown command :nope, try :help\n")
	c.Check(s.session.format, check.Equals, output.Repr)

	s.stdout.Reset()
	s.feed(":help")
	c.Check(s.stdout.String(), check.Equals, shellHelp)
}

func (s *ShellSuite) TestCompleteWord(c *check.C) {
	head, completions, tail := completeWord("latest(na", 9)
	c.Check(head, check.Equals, "latest(")
	c.Check(completions, check.DeepEquals, []string{"name"})
	c.Check(tail, check.Equals, "")

	head, completions, tail = completeWord("lat == 'x'", 3)
	c.Check(head, check.Equals, "")
	c.Check(completions, check.DeepEquals, []string{"latest"})
	c.Check(tail, check.Equals, " == 'x'")

	_, completions, _ = completeWord("name == 'a' a", 13)
	c.Check(completions, check.DeepEquals, []string{"and"})

	_, completions, _ = completeWord("para", 4)
	c.Check(completions, check.DeepEquals, []string{"parameter:"})

	_, completions, _ = completeWord("name ", 5)
	c.Check(completions, check.IsNil)

	_, completions, _ = completeWord("xyz", 3)
	c.Check(completions, check.IsNil)
}

func (s *ShellSuite) TestTrimHistory(c *check.C) {
	history := []byte("a\nb\nc\n")

	c.Check(string(trimHistory(history, 0)), check.Equals, "a\nb\nc\n")
	c.Check(string(trimHistory(history, 5)), check.Equals, "a\nb\nc\n")
	c.Check(string(trimHistory(history, 2)), check.Equals, "b\nc\n")
	c.Check(string(trimHistory(nil, 2)), check.Equals, "")
}

func (s *ShellSuite) TestShellFormat(c *check.C) {
	format, err := shellFormat("YAML")
	c.Assert(err, check.IsNil)
	c.Check(format, check.Equals, output.YAML)

	_, err = shellFormat("msgpack")
	c.Check(err, check.ErrorMatches, "format msgpack can't be displayed in shell")
}
