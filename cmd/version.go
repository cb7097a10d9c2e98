package cmd

import (
	"github.com/outpack-dev/outpack-query/outpack"
	"github.com/smira/commander"
)

func queryVersion(cmd *commander.Command, args []string) error {
	context.Printer().Printf("outpack-query version: %s\n", outpack.Version)
	return nil
}

func makeCmdVersion() *commander.Command {
	return &commander.Command{
		Run:       queryVersion,
		UsageLine: "version",
		Short:     "display version",
		Long: `
Shows outpack-query version.

ex:
  $ outpack-query version
`,
	}
}
