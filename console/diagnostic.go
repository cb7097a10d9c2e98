package console

import (
	"strings"

	"github.com/outpack-dev/outpack-query/query"
	"github.com/pkg/errors"
	"github.com/wsxiaoys/terminal/color"
)

// FormatDiagnostic renders query error with the offending line of the query
// and a marker under the failed fragment:
//
//	expected query at 1:9: unexpected token x: expecting literal
//	    name == x
//	            ^
//
// Errors other than *query.ParseError are rendered as is. Result has no trailing newline.
func FormatDiagnostic(err error, colored bool) string {
	var parseErr *query.ParseError
	if !errors.As(err, &parseErr) {
		if colored {
			return color.Sprint("@r" + escape(err.Error()) + "@|")
		}
		return err.Error()
	}

	line := parseErr.Line()

	var marker strings.Builder
	column := 1
	for _, r := range line {
		if column >= parseErr.Pos.Column {
			break
		}
		if r == '\t' {
			marker.WriteRune('\t')
		} else {
			marker.WriteRune(' ')
		}
		column++
	}

	underline := "^"
	if width := parseErr.FragmentWidth(); width > 1 {
		underline += strings.Repeat("~", width-1)
	}

	const indent = "    "

	if !colored {
		return parseErr.Error() + "\n" + indent + line + "\n" + indent + marker.String() + underline
	}

	return color.Sprint("@{!r}" + escape(parseErr.Error()) + "@|\n" +
		indent + escape(line) + "\n" +
		indent + marker.String() + "@{!g}" + underline + "@|")
}

// escape protects '@' from being interpreted as color markup
func escape(s string) string {
	return strings.Replace(s, "@", "@@", -1)
}
