package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/smira/flag"
	check "gopkg.in/check.v1"
)

type QueryFlagSuite struct{}

var _ = check.Suite(&QueryFlagSuite{})

func (s *QueryFlagSuite) TestFlag(c *check.C) {
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	q := AddQueryFlag(flags, "query", "query text")

	c.Check(flags.Set("query", "@query.txt"), check.IsNil)
	c.Check(q.String(), check.Equals, "@query.txt")
	c.Check(q.Get(), check.Equals, "@query.txt")
	c.Check(flags.Lookup("query").Value.String(), check.Equals, "@query.txt")
}

func (s *QueryFlagSuite) TestGetQueryText(c *check.C) {
	text, err := GetQueryText("latest", nil)
	c.Check(err, check.IsNil)
	c.Check(text, check.Equals, "latest")

	text, err = GetQueryText("@-", strings.NewReader("name == 'x'\n\n"))
	c.Check(err, check.IsNil)
	c.Check(text, check.Equals, "name == 'x'")

	filename := filepath.Join(c.MkDir(), "query")
	c.Assert(os.WriteFile(filename, []byte("id == '1'\r\n"), 0644), check.IsNil)

	text, err = GetQueryText("@"+filename, nil)
	c.Check(err, check.IsNil)
	c.Check(text, check.Equals, "id == '1'")

	_, err = GetQueryText("@"+filename+"-missing", nil)
	c.Check(err, check.ErrorMatches, "unable to read query from .*query-missing: .*")
}
