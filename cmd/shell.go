package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/outpack-dev/outpack-query/console"
	"github.com/outpack-dev/outpack-query/outpack"
	"github.com/outpack-dev/outpack-query/output"
	"github.com/outpack-dev/outpack-query/query"
	"github.com/outpack-dev/outpack-query/utils"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
)

// words offered on tab completion
var shellKeywords = []string{
	"latest", "single", "and", "or", "not",
	"name", "id", "parameter:", "this:", "environment:",
	"true", "false", "null",
}

const shellHelp = `Enter a query to see its parsed tree, query could span several lines
until it is complete (empty line finishes incomplete query).

  :format [<format>]  show or change output format (text, repr, json, yaml)
  :help               show this help
  exit, quit, ^D      leave the shell
  ^C                  drop current input
`

// completeWord completes the word under cursor with query keywords
func completeWord(line string, pos int) (head string, completions []string, tail string) {
	runes := []rune(line)
	head, tail = string(runes[:pos]), string(runes[pos:])

	start := strings.LastIndexAny(head, " \t\n()!=<>&|,") + 1
	prefix := head[start:]
	head = head[:start]

	if prefix == "" {
		return
	}

	for _, keyword := range shellKeywords {
		if strings.HasPrefix(keyword, prefix) {
			completions = append(completions, keyword)
		}
	}

	return
}

// shellSession evaluates shell input line by line
type shellSession struct {
	printer outpack.Printer
	format  output.Format
	colored bool
	pending []string
}

// Prompt returns prompt to display, depending on whether query is being continued
func (s *shellSession) Prompt(base string) string {
	if len(s.pending) == 0 {
		return base
	}

	if len(base) > 1 {
		return strings.Repeat(".", len(base)-1) + " "
	}
	return base
}

// Reset drops incomplete query, reports whether there was any
func (s *shellSession) Reset() bool {
	dropped := len(s.pending) > 0
	s.pending = nil
	return dropped
}

// Feed processes single line of input, returns false when shell should be closed
func (s *shellSession) Feed(line string) bool {
	trimmed := strings.TrimSpace(line)

	if len(s.pending) == 0 {
		switch {
		case trimmed == "":
			return true
		case trimmed == "exit" || trimmed == "quit":
			return false
		case strings.HasPrefix(trimmed, ":"):
			s.command(strings.Fields(trimmed))
			return true
		}
	} else if trimmed == "" {
		s.evaluate(true)
		return true
	}

	s.pending = append(s.pending, line)
	s.evaluate(false)

	return true
}

func (s *shellSession) evaluate(force bool) {
	text := strings.Join(s.pending, "\n")

	node, err := query.Parse(text)
	if err != nil {
		if !force && query.Incomplete(err) {
			return
		}

		s.pending = nil
		s.printer.PrintfStdErr("%s\n", console.FormatDiagnostic(err, s.colored))
		return
	}

	s.pending = nil

	var buf bytes.Buffer
	if err = output.Encode(&buf, node, s.format); err != nil {
		s.printer.PrintfStdErr("ERROR: %s\n", err)
		return
	}

	s.printer.Printf("%s", buf.String())
}

func (s *shellSession) command(fields []string) {
	switch fields[0] {
	case ":help":
		s.printer.Printf("%s", shellHelp)
	case ":format":
		if len(fields) == 1 {
			s.printer.Printf("%s\n", s.format)
			return
		}

		format, err := shellFormat(fields[1])
		if err != nil {
			s.printer.PrintfStdErr("ERROR: %s\n", err)
			return
		}
		s.format = format
	default:
		s.printer.PrintfStdErr("ERROR: unknown command %s, try :help\n", fields[0])
	}
}

// shellFormat parses format name, rejecting formats which can't be displayed
func shellFormat(name string) (output.Format, error) {
	format, err := output.ParseFormat(name)
	if err != nil {
		return "", err
	}

	if format.Binary() {
		return "", errors.Errorf("format %s can't be displayed in shell", format)
	}

	return format, nil
}

func loadHistory(line *liner.State, filename string) {
	f, err := os.Open(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("unable to read shell history")
		}
		return
	}
	defer f.Close()

	if _, err = line.ReadHistory(f); err != nil {
		log.Warn().Err(err).Str("history", filename).Msg("unable to read shell history")
	}
}

// trimHistory keeps only limit last entries of history, limit 0 means no limit
func trimHistory(history []byte, limit int) []byte {
	if limit <= 0 {
		return history
	}

	entries := bytes.SplitAfter(history, []byte("\n"))
	if len(entries[len(entries)-1]) == 0 {
		entries = entries[:len(entries)-1]
	}

	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	return bytes.Join(entries, nil)
}

func saveHistory(line *liner.State, filename string, limit int) error {
	var buf bytes.Buffer

	if err := utils.DirIsAccessible(filepath.Dir(filename)); err != nil {
		return errors.Wrap(err, "unable to save shell history")
	}

	if _, err := line.WriteHistory(&buf); err != nil {
		return err
	}

	return errors.Wrap(os.WriteFile(filename, trimHistory(buf.Bytes(), limit), 0600), "unable to save shell history")
}

func queryShell(cmd *commander.Command, args []string) error {
	if len(args) != 0 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	format, err := context.OutputFormat()
	if err != nil {
		return err
	}
	if format.Binary() {
		return errors.Errorf("format %s can't be displayed in shell", format)
	}

	config := context.Config()
	printer := context.Printer()

	session := &shellSession{
		printer: printer,
		format:  format,
		colored: context.Colored(),
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetWordCompleter(completeWord)
	line.SetTabCompletionStyle(liner.TabPrints)

	if historyFile := config.GetHistoryFile(); historyFile != "" {
		loadHistory(line, historyFile)
		defer func() {
			if err := saveHistory(line, historyFile, config.Shell.HistoryLimit); err != nil {
				log.Warn().Err(err).Str("history", historyFile).Msg("shell history not saved")
			}
		}()
	}

	printer.Printf("outpack-query %s, type :help for help\n", outpack.Version)

	for {
		printer.Flush()

		input, err := line.Prompt(session.Prompt(config.Shell.Prompt))
		if err == liner.ErrPromptAborted {
			if session.Reset() {
				printer.Printf("^C (cleared)\n")
			}
			continue
		}
		if err == io.EOF {
			printer.Printf("\n")
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "error reading input")
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if !session.Feed(input) {
			return nil
		}
	}
}

func makeCmdShell() *commander.Command {
	cmd := &commander.Command{
		Run:       queryShell,
		UsageLine: "shell",
		Short:     "interactive query shell",
		Long: `
Command shell starts interactive session, each entered query
is parsed and its tree is printed. Shell supports history and
completion of keywords with Tab.

Example:

  $ outpack-query shell
  query> latest(name == "data")
  latest(name == "data")
`,
	}

	return cmd
}
