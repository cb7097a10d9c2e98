package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
)

// readCommands splits lines of input into command arguments, commands are separated by newlines
func readCommands(r io.Reader) ([]string, error) {
	cmdArgs := []string{}

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parsedArgs, err := shellwords.Parse(text + ",")
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse command %q", text)
		}
		cmdArgs = append(cmdArgs, parsedArgs...)
	}

	return cmdArgs, scanner.Err()
}

func queryTaskRun(cmd *commander.Command, args []string) error {
	var (
		err     error
		cmdList [][]string
	)

	printer := context.Printer()

	if filename := context.Flags().Lookup("filename").Value.Get().(string); filename != "" {
		if finfo, err := os.Stat(filename); os.IsNotExist(err) || (err == nil && finfo.IsDir()) {
			return fmt.Errorf("no such file, %s", filename)
		}

		file, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer file.Close()

		cmdArgs, err := readCommands(file)
		if err != nil {
			return err
		}

		if len(cmdArgs) == 0 {
			return fmt.Errorf("the file is empty, nothing to run")
		}

		cmdList = formatCommands(cmdArgs)
	} else if len(args) == 0 {
		printer.Printf("Please enter one command per line and leave one blank when finished.\n")
		printer.Flush()

		var lines strings.Builder

		reader := bufio.NewReader(os.Stdin)
		for {
			printer.Printf("> ")
			printer.Flush()

			text, readErr := reader.ReadString('\n')
			if strings.TrimSpace(text) == "" {
				break
			}
			lines.WriteString(text + "\n")
			if readErr != nil {
				break
			}
		}

		cmdArgs, err := readCommands(strings.NewReader(lines.String()))
		if err != nil {
			return err
		}

		if len(cmdArgs) == 0 {
			return fmt.Errorf("nothing entered, nothing to run")
		}

		cmdList = formatCommands(cmdArgs)
	} else {
		cmdList = formatCommands(args)
	}

	commandErrored := false

	for i, command := range cmdList {
		if !commandErrored {
			printer.ColoredPrintf("@g%d) [Running]: %s@!", i+1, strings.Join(command, " "))
			printer.ColoredPrintf("\n@yBegin command output: ----------------------------@!")
			printer.Flush()

			log.Debug().Strs("command", command).Msg("running task command")

			returnCode := Run(RootCommand(), command, false)
			if returnCode != 0 {
				commandErrored = true
			}
			printer.ColoredPrintf("\n@yEnd command output: ------------------------------@!")
			CleanupContext()
		} else {
			printer.ColoredPrintf("@r%d) [Skipping]: %s@!", i+1, strings.Join(command, " "))
		}
	}

	if commandErrored {
		err = fmt.Errorf("at least one command has reported an error")
	}

	return err
}

// formatCommands splits list of arguments into commands, each command ends
// with argument having trailing comma
func formatCommands(args []string) [][]string {
	var cmd []string
	var cmdArray [][]string

	for _, s := range args {
		if sTrimmed := strings.TrimRight(s, ","); sTrimmed != s {
			if sTrimmed != "" {
				cmd = append(cmd, sTrimmed)
			}
			if len(cmd) > 0 {
				cmdArray = append(cmdArray, cmd)
			}
			cmd = []string{}
		} else {
			cmd = append(cmd, s)
		}
	}

	if len(cmd) > 0 {
		cmdArray = append(cmdArray, cmd)
	}

	return cmdArray
}

func makeCmdTaskRun() *commander.Command {
	cmd := &commander.Command{
		Run:       queryTaskRun,
		UsageLine: "run (-filename=<filename> | <command1>, <command2>, ...)",
		Short:     "run sequence of commands",
		Long: `
Command runs several outpack-query commands one after another,
commands are read from the file (one per line), from arguments
(separated with commas) or from standard input. Execution stops
at the first failed command.

Queries containing spaces or quotes should be quoted as in shell.

Example:

  $ outpack-query task run
  > parse "latest(name == 'data')"
  > check "parameter:x > 1" "name == 'b'"
  >

  $ outpack-query task run version, parse latest
`,
	}

	cmd.Flag.String("filename", "", "specifies the filename that contains the commands to run")

	return cmd
}
