package cmd

import (
	ctx "github.com/outpack-dev/outpack-query/context"
	"github.com/pkg/errors"
	"github.com/smira/flag"
)

var context *ctx.QueryContext

// FatalError is an alias for the panic value used to abort commands
type FatalError = ctx.FatalError

// Fatal panics and aborts execution with exit code 1
func Fatal(err error) {
	ctx.Fatal(err)
}

// InitContext initializes context with default settings
func InitContext(flags *flag.FlagSet) error {
	var err error

	if context != nil {
		return errors.New("context already initialized")
	}

	context, err = ctx.NewContext(flags)

	return err
}

// ShutdownContext shuts context down
func ShutdownContext() {
	context.Shutdown()
	context = nil
}

// CleanupContext does partial shutdown of context
func CleanupContext() {
	context.Cleanup()
}

// GetContext gives access to the context
func GetContext() *ctx.QueryContext {
	return context
}
