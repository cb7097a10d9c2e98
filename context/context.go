// Package context provides single entry to all resources
package context

import (
	gocontext "context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/outpack-dev/outpack-query/console"
	"github.com/outpack-dev/outpack-query/outpack"
	"github.com/outpack-dev/outpack-query/output"
	"github.com/outpack-dev/outpack-query/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

// QueryContext is a common context shared by all commands
type QueryContext struct {
	sync.Mutex

	gocontext.Context

	flags, globalFlags *flag.FlagSet
	configLoaded       bool

	stdout, stderr io.Writer
	printer        outpack.Printer
}

// FatalError is type for panicking to abort execution with non-zero
// exit code and print meaningful explanation
type FatalError struct {
	ReturnCode int
	Message    string
}

// Fatal panics and aborts execution with exit code 1
func Fatal(err error) {
	returnCode := 1
	if err == commander.ErrFlagError || err == commander.ErrCommandError {
		returnCode = 2
	}
	panic(&FatalError{ReturnCode: returnCode, Message: err.Error()})
}

// Config loads and returns current configuration
func (context *QueryContext) Config() *utils.ConfigStructure {
	context.Lock()
	defer context.Unlock()

	return context.config()
}

func (context *QueryContext) config() *utils.ConfigStructure {
	if !context.configLoaded {
		var err error

		configLocation := context.globalFlags.Lookup("config").Value.String()
		if configLocation != "" {
			err = utils.LoadConfig(configLocation, &utils.Config)

			if err != nil {
				Fatal(errors.Wrapf(err, "error loading config file %s", configLocation))
			}
		} else {
			for _, configLocation := range utils.ConfigLocations() {
				err = utils.LoadConfig(configLocation, &utils.Config)
				if err == nil {
					log.Debug().Str("config", configLocation).Msg("config loaded")
					break
				}
				if !os.IsNotExist(err) {
					Fatal(errors.Wrapf(err, "error loading config file %s", configLocation))
				}
			}
		}

		context.configLoaded = true
	}
	return &utils.Config
}

// LookupOption checks string flag with default (usually config) and command-line
// setting
func (context *QueryContext) LookupOption(defaultValue string, name string) (result string) {
	context.Lock()
	defer context.Unlock()

	return context.lookupOption(defaultValue, name)
}

func (context *QueryContext) lookupOption(defaultValue string, name string) (result string) {
	result = defaultValue

	if f := context.flags.Lookup(name); f != nil {
		if value := f.Value.String(); value != "" {
			result = value
		}
	}

	return
}

// OutputFormat returns format for printing query trees, -format flag
// overrides configuration
func (context *QueryContext) OutputFormat() (output.Format, error) {
	context.Lock()
	defer context.Unlock()

	return output.ParseFormat(context.lookupOption(context.config().OutputFormat, "format"))
}

// Colored reports whether console output should be colored
func (context *QueryContext) Colored() bool {
	context.Lock()
	defer context.Unlock()

	return context.colored()
}

func (context *QueryContext) colored() bool {
	switch context.config().Color {
	case utils.ColorAlways:
		return true
	case utils.ColorNever:
		return false
	}

	return context.stdout == io.Writer(os.Stdout) && console.RunningOnTerminal()
}

// Printer creates or returns Printer
func (context *QueryContext) Printer() outpack.Printer {
	context.Lock()
	defer context.Unlock()

	return context._printer()
}

func (context *QueryContext) _printer() outpack.Printer {
	if context.printer == nil {
		printer := console.NewPrinter(context.stdout, context.stderr, context.colored())
		printer.Interactive = context.stdout == io.Writer(os.Stdout) && console.RunningOnTerminal()
		printer.Start()

		context.printer = printer
	}

	return context.printer
}

// RedirectOutput sends all the output of commands to stdout and stderr
func (context *QueryContext) RedirectOutput(stdout, stderr io.Writer) {
	context.Lock()
	defer context.Unlock()

	if context.printer != nil {
		context.printer.Shutdown()
		context.printer = nil
	}

	context.stdout, context.stderr = stdout, stderr
}

// Stdout returns writer for command results not going through Printer
func (context *QueryContext) Stdout() io.Writer {
	context.Lock()
	defer context.Unlock()

	return context.stdout
}

// UpdateFlags sets internal copy of flags in the context
func (context *QueryContext) UpdateFlags(flags *flag.FlagSet) {
	context.Lock()
	defer context.Unlock()

	context.flags = flags
}

// Flags returns current command flags
func (context *QueryContext) Flags() *flag.FlagSet {
	context.Lock()
	defer context.Unlock()

	return context.flags
}

// GlobalFlags returns flags passed to main command
func (context *QueryContext) GlobalFlags() *flag.FlagSet {
	context.Lock()
	defer context.Unlock()

	return context.globalFlags
}

// GoContextHandleSignals upgrades context to handle ^C and SIGTERM by aborting context
func (context *QueryContext) GoContextHandleSignals() {
	context.Lock()
	defer context.Unlock()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)

	var cancel gocontext.CancelFunc

	context.Context, cancel = gocontext.WithCancel(context.Context)

	go func() {
		<-sigch
		signal.Stop(sigch)
		context.Printer().PrintfStdErr("Aborting... press ^C once again to abort immediately\n")
		cancel()
	}()
}

// Shutdown shuts context down
func (context *QueryContext) Shutdown() {
	context.Lock()
	defer context.Unlock()

	if context.printer != nil {
		context.printer.Shutdown()
		context.printer = nil
	}
}

// Cleanup does partial shutdown of context, flushing the output
func (context *QueryContext) Cleanup() {
	context.Lock()
	defer context.Unlock()

	if context.printer != nil {
		context.printer.Flush()
	}
}

// NewContext initializes context with default settings and sets up logging
func NewContext(flags *flag.FlagSet) (*QueryContext, error) {
	context := &QueryContext{
		flags:       flags,
		globalFlags: flags,
		Context:     gocontext.TODO(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	config := context.config()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if _, err := output.ParseFormat(config.OutputFormat); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	utils.SetupLogger(config.LogFormat, context.lookupOption(config.LogLevel, "log-level"), os.Stderr)

	return context, nil
}
