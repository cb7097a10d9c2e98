// Package cmd implements console commands
package cmd

import (
	"bytes"
	"os"

	"github.com/outpack-dev/outpack-query/ast"
	"github.com/outpack-dev/outpack-query/console"
	"github.com/outpack-dev/outpack-query/output"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

// PrintTree prints query tree in the requested format
func PrintTree(node ast.Node, format output.Format) error {
	var buf bytes.Buffer

	if err := output.Encode(&buf, node, format); err != nil {
		return err
	}

	context.Printer().Printf("%s", buf.String())
	return nil
}

// PrintDiagnostic prints query error with the offending line to stderr
func PrintDiagnostic(err error) {
	context.Printer().PrintfStdErr("%s\n", console.FormatDiagnostic(err, context.Colored()))
}

// RootCommand creates root command in command tree
func RootCommand() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0],
		Short:     "outpack packet query language tool",
		Long: `
outpack-query parses queries selecting packets from outpack
metadata store, checks them and shows parsed query trees.

Queries combine tests on packet metadata with boolean operators:

  name == "data" && parameter:x > 1
  latest(name == "data" and not (this:y == true))
  single(id == "20230101-120000-abcdef01")
  "20230101-120000-abcdef01"

Lookups are name, id, parameter:<name>, this:<name> and environment:<name>,
literals are strings (single or double quoted), numbers, true, false and null.`,
		Flag: *flag.NewFlagSet("outpack-query", flag.ExitOnError),
		Subcommands: []*commander.Command{
			makeCmdParse(),
			makeCmdCheck(),
			makeCmdShell(),
			makeCmdTask(),
			makeCmdConfig(),
			makeCmdVersion(),
		},
	}

	cmd.Flag.String("config", "", "location of configuration file (default locations in order: ~/.outpack-query.conf, /etc/outpack-query.conf)")
	cmd.Flag.String("log-level", "", "log level (trace, debug, info, warn, error), default from config")
	cmd.Flag.String("format", "", "output format for query trees (text, repr, json, yaml, msgpack), default from config")

	return cmd
}
