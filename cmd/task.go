package cmd

import (
	"github.com/smira/commander"
)

func makeCmdTask() *commander.Command {
	return &commander.Command{
		UsageLine: "task",
		Short:     "run several commands at once",
		Subcommands: []*commander.Command{
			makeCmdTaskRun(),
		},
	}
}
