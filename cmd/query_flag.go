package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/smira/flag"
)

// QueryFlag holds query text passed with a flag.
//
// Value starting with '@' is a filename the query is read from, '@-' reads
// the query from stdin. Flag keeps raw value, GetQueryText does the reading,
// so errors are reported as command errors, not as flag parsing errors.
type QueryFlag struct {
	value string
}

func (q *QueryFlag) String() string {
	return q.value
}

// Set stores raw flag value
func (q *QueryFlag) Set(value string) error {
	q.value = value
	return nil
}

// Get returns raw flag value
func (q *QueryFlag) Get() any {
	return q.value
}

// AddQueryFlag registers QueryFlag with the flagset
func AddQueryFlag(flagSet *flag.FlagSet, name string, usage string) *QueryFlag {
	result := &QueryFlag{}
	flagSet.Var(result, name, usage)
	return result
}

// GetQueryText returns value as is, unless it starts with '@'
func GetQueryText(value string, stdin io.Reader) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}

	filename := strings.TrimPrefix(value, "@")
	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return "", errors.Wrapf(err, "unable to read query from %s", filename)
	}

	return strings.TrimRight(string(data), " \t\r\n"), nil
}
