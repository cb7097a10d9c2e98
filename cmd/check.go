package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/outpack-dev/outpack-query/outpack"
	"github.com/outpack-dev/outpack-query/query"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
)

// checkItem is query to be checked along with its location
type checkItem struct {
	where string
	text  string
}

// readQueries reads queries from r, one per line, skipping
// blank lines and comments
func readQueries(r io.Reader, name string) ([]checkItem, error) {
	var items []checkItem

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		items = append(items, checkItem{where: fmt.Sprintf("%s:%d", name, lineNo), text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %s", name)
	}

	return items, nil
}

// checkQueries parses all the queries, reporting results, returns number of failed queries
func checkQueries(items []checkItem, reporter outpack.ResultReporter) (failed int, err error) {
	printer := context.Printer()

	printer.InitBar(int64(len(items)))
	defer printer.ShutdownBar()

	for _, item := range items {
		if err = context.Err(); err != nil {
			return
		}

		node, parseErr := query.Parse(item.text)
		if parseErr != nil {
			failed++
			reporter.Failed("%s: %s", item.where, item.text)
			PrintDiagnostic(parseErr)
		} else {
			reporter.Passed("%s: %s", item.where, node)
		}

		printer.AddBar(1)
	}

	return
}

func queryCheck(cmd *commander.Command, args []string) error {
	var (
		items []checkItem
		err   error
	)

	filename := context.Flags().Lookup("filename").Value.String()
	if filename != "" && len(args) > 0 {
		return errors.New("queries could be passed either with -filename or as arguments")
	}

	switch {
	case filename == "-":
		items, err = readQueries(os.Stdin, "stdin")
	case filename != "":
		var file *os.File

		file, err = os.Open(filename)
		if err != nil {
			return err
		}
		defer file.Close()

		context.GoContextHandleSignals()
		items, err = readQueries(file, filename)
	default:
		if len(args) == 0 {
			cmd.Usage()
			return commander.ErrCommandError
		}

		for i, arg := range args {
			items = append(items, checkItem{where: fmt.Sprintf("#%d", i+1), text: arg})
		}
	}

	if err != nil {
		return err
	}

	if len(items) == 0 {
		context.Printer().ColoredPrintfStdErr("@y[!]@| @!No queries to check@|")
		return nil
	}

	log.Debug().Int("count", len(items)).Msg("checking queries")

	reporter := &outpack.ConsoleResultReporter{
		Printer: context.Printer(),
		Quiet:   context.Flags().Lookup("quiet").Value.Get().(bool),
	}

	failed, err := checkQueries(items, reporter)
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d queries are invalid", failed, len(items))
	}

	return nil
}

func makeCmdCheck() *commander.Command {
	cmd := &commander.Command{
		Run:       queryCheck,
		UsageLine: "check (-filename=<filename> | <query> ...)",
		Short:     "check that queries are valid",
		Long: `
Command check parses every query and reports invalid ones.
Queries are taken from arguments, or from the file (one
query per line, empty lines and lines starting with # are
ignored). Filename - stands for standard input.

Exit status is non-zero if at least one query is invalid.

Example:

  $ outpack-query check 'name == "a"' 'latest(id == "b")'
  $ outpack-query check -filename=queries.txt
`,
	}

	cmd.Flag.String("filename", "", "file with queries, one per line")
	cmd.Flag.Bool("quiet", false, "don't report valid queries")

	return cmd
}
