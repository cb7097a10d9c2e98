package main

import (
	"os"

	"github.com/outpack-dev/outpack-query/cmd"
	"github.com/outpack-dev/outpack-query/outpack"
)

// Version variable, filled in at link time
var Version string

func main() {
	if Version == "" {
		Version = "unknown"
	}

	outpack.Version = Version

	os.Exit(cmd.Run(cmd.RootCommand(), os.Args[1:], true))
}
