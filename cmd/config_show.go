package cmd

import (
	"bytes"

	"github.com/outpack-dev/outpack-query/utils"
	"github.com/smira/commander"
)

func queryConfigShow(cmd *commander.Command, args []string) error {
	if len(args) != 0 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	config := context.Config()

	var (
		buf bytes.Buffer
		err error
	)

	if context.Flags().Lookup("yaml").Value.Get().(bool) {
		err = utils.WriteConfigYAML(&buf, config)
	} else {
		err = utils.WriteConfig(&buf, config)
	}
	if err != nil {
		return err
	}

	context.Printer().Printf("%s", buf.String())

	return nil
}

func makeCmdConfigShow() *commander.Command {
	cmd := &commander.Command{
		Run:       queryConfigShow,
		UsageLine: "show",
		Short:     "show current outpack-query's config",
		Long: `
Command show displays the current outpack-query configuration,
as loaded from the configuration file merged with defaults.

Example:

  $ outpack-query config show -yaml

`,
	}

	cmd.Flag.Bool("yaml", false, "show configuration in YAML format")

	return cmd
}
