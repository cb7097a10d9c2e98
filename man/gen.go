// Command gen renders outpack-query reference page from the command tree:
//
//	go run ./man
//
// Page is written to man/outpack-query.1.md in ronn-compatible markdown.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"

	"github.com/outpack-dev/outpack-query/cmd"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

const pageTemplate = `{{define "main"}}outpack-query(1) -- {{.Short}}
===

## SYNOPSIS

Common command format:

` + "`outpack-query`" + ` [<global options>...] <command> [<options>...] <arguments>
{{.Long}}

## GLOBAL OPTIONS
{{range allFlags .Flag}}
  * ` + "`-{{.Name}}`" + `{{if .DefValue}}=` + "`{{.DefValue}}`" + `{{end}}:
    {{.Usage}}
{{end}}
{{range .Subcommands}}{{template "command" .}}{{end}}{{end}}
{{define "command"}}{{if .Runnable}}
## {{toUpper .Short}}

{{capitalize (usageLine .)}}
{{.Long}}
{{with allFlags .Flag}}Options:
{{range .}}
  * ` + "`-{{.Name}}`" + `{{if .DefValue}}=` + "`{{.DefValue}}`" + `{{end}}:
    {{.Usage}}
{{end}}{{end}}{{end}}{{range .Subcommands}}{{template "command" .}}{{end}}{{end}}`

func allFlags(flags flag.FlagSet) []*flag.Flag {
	result := []*flag.Flag{}
	flags.VisitAll(func(f *flag.Flag) {
		result = append(result, f)
	})
	return result
}

// usageLine is UsageLine prefixed with parent command names
func usageLine(command *commander.Command) string {
	if command.Parent == nil {
		return command.UsageLine
	}

	return command.Parent.FullSpacedName() + " " + command.UsageLine
}

// capitalize quotes literal words of the usage line, leaving <arguments> as is
func capitalize(s string) string {
	parts := strings.Split(s, " ")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if part[0] != '<' && part[0] != '[' && part[len(part)-1] != '>' && part[len(part)-1] != ']' {
			parts[i] = "`" + part + "`"
		}
	}

	return strings.Join(parts, " ")
}

func render(w io.Writer, command *commander.Command) error {
	command.UsageLine = "outpack-query"

	// initializes command hierarchy
	if _, _, err := command.ParseFlags(nil); err != nil {
		return err
	}

	templ := template.New("man").Funcs(template.FuncMap{
		"allFlags":   allFlags,
		"usageLine":  usageLine,
		"toUpper":    strings.ToUpper,
		"capitalize": capitalize,
	})
	templ = template.Must(templ.Parse(pageTemplate))

	return templ.ExecuteTemplate(w, "main", command)
}

func main() {
	_, _File, _, _ := runtime.Caller(0)
	_File, _ = filepath.Abs(_File)

	filename := filepath.Join(filepath.Dir(_File), "outpack-query.1.md")

	output, err := os.Create(filename)
	if err != nil {
		log.Fatal(err)
	}

	err = render(output, cmd.RootCommand())
	if err != nil {
		log.Fatal(err)
	}

	if err = output.Close(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("written %s\n", filename)
}
