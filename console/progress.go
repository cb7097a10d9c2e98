package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/outpack-dev/outpack-query/outpack"
	"github.com/wsxiaoys/terminal/color"
)

const (
	codePrint = iota
	codePrintStdErr
	codeProgress
	codeHideProgress
	codeStop
	codeFlush
	codeBarEnabled
	codeBarDisabled
)

type printTask struct {
	code    int
	message string
	reply   chan bool
}

// Printer serializes all the output of commands, it allows results and diagnostics
// to be mixed with progress bar for long batches of queries
type Printer struct {
	// Interactive enables progress bar, should be set only when stdout is terminal
	Interactive bool

	stdout   io.Writer
	stderr   io.Writer
	colored  bool
	stopped  chan bool
	queue    chan printTask
	bar      *pb.ProgressBar
	barShown bool
}

// Check interface
var (
	_ outpack.Printer = (*Printer)(nil)
)

// NewPrinter creates new printer instance
func NewPrinter(stdout, stderr io.Writer, colored bool) *Printer {
	return &Printer{
		stdout:  stdout,
		stderr:  stderr,
		colored: colored,
		stopped: make(chan bool),
		queue:   make(chan printTask, 100),
	}
}

// Start makes printer start its work
func (p *Printer) Start() {
	go p.worker()
}

// Shutdown shuts down printer, flushing all the queued messages
func (p *Printer) Shutdown() {
	p.ShutdownBar()
	p.queue <- printTask{code: codeStop}
	<-p.stopped
}

// Flush waits for all queued messages to be displayed
func (p *Printer) Flush() {
	ch := make(chan bool)
	p.queue <- printTask{code: codeFlush, reply: ch}
	<-ch
}

// Colored reports whether color marks are rendered
func (p *Printer) Colored() bool {
	return p.colored
}

// InitBar starts progressbar for count items
func (p *Printer) InitBar(count int64) {
	if p.bar != nil {
		panic("bar already initialized")
	}
	if p.Interactive {
		p.bar = pb.New(0)
		p.bar.Total = count
		p.bar.NotPrint = true
		p.bar.Callback = func(out string) {
			p.queue <- printTask{code: codeProgress, message: out}
		}

		p.queue <- printTask{code: codeBarEnabled}
		p.bar.Start()
	}
}

// ShutdownBar stops progress bar and hides it
func (p *Printer) ShutdownBar() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	p.queue <- printTask{code: codeBarDisabled}
	p.bar = nil
	p.queue <- printTask{code: codeHideProgress}
}

// AddBar increments progress for progress bar
func (p *Printer) AddBar(count int) {
	if p.bar != nil {
		p.bar.Add(count)
	}
}

// Printf does printf but in safe manner: not overwriting progress bar
func (p *Printer) Printf(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrint, message: fmt.Sprintf(msg, a...)}
}

// PrintfStdErr does printf but in safe manner to stderr
func (p *Printer) PrintfStdErr(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrintStdErr, message: fmt.Sprintf(msg, a...)}
}

// ColoredPrintf does printf in colored way + newline
func (p *Printer) ColoredPrintf(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrint, message: p.colorize(msg, a...) + "\n"}
}

// ColoredPrintfStdErr does colored printf + newline to stderr
func (p *Printer) ColoredPrintfStdErr(msg string, a ...interface{}) {
	p.queue <- printTask{code: codePrintStdErr, message: p.colorize(msg, a...) + "\n"}
}

func (p *Printer) colorize(msg string, a ...interface{}) string {
	if p.colored {
		// markup is compiled in msg only, arguments are printed as is
		return color.Sprintf(msg, a...)
	}
	return fmt.Sprintf(StripColorMarks(msg), a...)
}

// StripColorMarks removes color markup (@r, @{kW}, ...) from message,
// "@@" is kept as literal '@'
func StripColorMarks(msg string) string {
	var inColorMark, inCurly bool
	return strings.Map(func(r rune) rune {
		if inColorMark {
			if inCurly {
				if r == '}' {
					inCurly = false
					inColorMark = false
				}
			} else {
				if r == '{' {
					inCurly = true
				} else if r == '@' {
					inColorMark = false
					return '@'
				} else {
					inColorMark = false
				}
			}
			return -1
		}

		if r == '@' {
			inColorMark = true
			return -1
		}

		return r
	}, msg)
}

func (p *Printer) clearBar() {
	if p.barShown {
		fmt.Fprint(p.stdout, "\r\033[2K")
		p.barShown = false
	}
}

func (p *Printer) worker() {
	hasBar := false

	for {
		task := <-p.queue
		switch task.code {
		case codeBarEnabled:
			hasBar = true
		case codeBarDisabled:
			hasBar = false
		case codePrint:
			p.clearBar()
			fmt.Fprint(p.stdout, task.message)
		case codePrintStdErr:
			p.clearBar()
			fmt.Fprint(p.stderr, task.message)
		case codeProgress:
			if hasBar {
				fmt.Fprint(p.stdout, "\r"+task.message)
				p.barShown = true
			}
		case codeHideProgress:
			p.clearBar()
		case codeFlush:
			task.reply <- true
		case codeStop:
			p.stopped <- true
			return
		}
	}
}
