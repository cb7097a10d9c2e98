// Package outpack provides common infrastructure shared by query commands
package outpack

// Printer is an output displaying entity, it allows progress bars & simple prints
type Printer interface {
	// Start makes printer start its work
	Start()
	// Shutdown shuts down printer
	Shutdown()
	// Flush waits for all queued messages to be displayed
	Flush()
	// Colored reports whether color marks are rendered
	Colored() bool
	// InitBar starts progressbar for count items
	InitBar(count int64)
	// ShutdownBar stops progress bar and hides it
	ShutdownBar()
	// AddBar increments progress for progress bar
	AddBar(count int)
	// Printf does printf but in safe manner: not overwriting progress bar
	Printf(msg string, a ...interface{})
	// PrintfStdErr does printf but in safe manner to stderr
	PrintfStdErr(msg string, a ...interface{})
	// ColoredPrintf does printf in colored way + newline
	ColoredPrintf(msg string, a ...interface{})
	// ColoredPrintfStdErr does printf to stderr in colored way + newline
	ColoredPrintfStdErr(msg string, a ...interface{})
}
