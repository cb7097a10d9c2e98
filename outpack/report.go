package outpack

import (
	"fmt"
)

// ResultReporter is abstraction for reporting results of query checks
type ResultReporter interface {
	// Warning is non-fatal problem, like unreadable line
	Warning(msg string, a ...interface{})
	// Passed is signal that query is valid
	Passed(msg string, a ...interface{})
	// Failed is signal that query is invalid
	Failed(msg string, a ...interface{})
}

// ConsoleResultReporter is implementation of ResultReporter that prints in colors to console
type ConsoleResultReporter struct {
	Printer Printer
	// Quiet suppresses reporting of passed queries
	Quiet bool
}

// Check interface
var (
	_ ResultReporter = &ConsoleResultReporter{}
)

// Warning is non-fatal error message (yellow)
func (c *ConsoleResultReporter) Warning(msg string, a ...interface{}) {
	c.Printer.ColoredPrintfStdErr("@y[!]@| @!"+msg+"@|", a...)
}

// Passed is signal that query is valid (green)
func (c *ConsoleResultReporter) Passed(msg string, a ...interface{}) {
	if c.Quiet {
		return
	}
	c.Printer.ColoredPrintf("@g[+]@| "+msg, a...)
}

// Failed is signal that query is invalid (red)
func (c *ConsoleResultReporter) Failed(msg string, a ...interface{}) {
	c.Printer.ColoredPrintfStdErr("@r[-]@| "+msg, a...)
}

// RecordingResultReporter is implementation of ResultReporter that collects all messages
type RecordingResultReporter struct {
	Warnings []string `json:"warnings"`
	Passes   []string `json:"passed"`
	Failures []string `json:"failed"`
}

// Check interface
var (
	_ ResultReporter = &RecordingResultReporter{}
)

// Warning is non-fatal error message
func (r *RecordingResultReporter) Warning(msg string, a ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(msg, a...))
}

// Passed is signal that query is valid
func (r *RecordingResultReporter) Passed(msg string, a ...interface{}) {
	r.Passes = append(r.Passes, fmt.Sprintf(msg, a...))
}

// Failed is signal that query is invalid
func (r *RecordingResultReporter) Failed(msg string, a ...interface{}) {
	r.Failures = append(r.Failures, fmt.Sprintf(msg, a...))
}
