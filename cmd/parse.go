package cmd

import (
	"os"
	"strings"

	"github.com/outpack-dev/outpack-query/query"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
)

func queryParse(cmd *commander.Command, args []string) error {
	queryValue := context.Flags().Lookup("query").Value.String()

	if queryValue != "" && len(args) > 0 {
		return errors.New("query could be passed either with -query or as arguments")
	}

	if queryValue == "" && len(args) == 0 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	format, err := context.OutputFormat()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if queryValue != "" {
		text, err = GetQueryText(queryValue, os.Stdin)
		if err != nil {
			return err
		}
	}

	node, err := query.Parse(text)
	if err != nil {
		PrintDiagnostic(err)
		return errors.New("unable to parse query")
	}

	log.Debug().Str("query", text).Str("format", string(format)).Msg("query parsed")

	return PrintTree(node, format)
}

func makeCmdParse() *commander.Command {
	cmd := &commander.Command{
		Run:       queryParse,
		UsageLine: "parse [<query>]",
		Short:     "parse query and show query tree",
		Long: `
Command parse parses the query and prints resulting query tree.
Query could be passed as several arguments, they are joined
with spaces. Alternatively query could be given with -query flag,
-query=@<file> reads query from the file, -query=@- from stdin.

Example:

  $ outpack-query parse 'latest(name == "data")'
  $ outpack-query parse -format=json 'parameter:x > 1'
  $ outpack-query parse -query=@query.txt
`,
	}

	AddQueryFlag(&cmd.Flag, "query", "query text, @<file> to read from file, @- to read from stdin")

	return cmd
}
