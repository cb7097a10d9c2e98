// Package output renders syntax trees in various formats
package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/outpack-dev/outpack-query/ast"
	"github.com/outpack-dev/outpack-query/query"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
	yaml "gopkg.in/yaml.v3"
)

// Format is tree output format
type Format string

// Supported formats
const (
	Text    Format = "text"    // canonical query text
	Repr    Format = "repr"    // debugging representation
	JSON    Format = "json"    // tagged document as JSON
	YAML    Format = "yaml"    // tagged document as YAML
	Msgpack Format = "msgpack" // tagged document as MessagePack
)

// Formats lists all formats
var Formats = []Format{Text, Repr, JSON, YAML, Msgpack}

// ParseFormat checks format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}

	names := make([]string, len(Formats))
	for i := range Formats {
		names[i] = string(Formats[i])
	}
	return "", errors.Errorf("unknown output format %q, supported formats: %s", name, strings.Join(names, ", "))
}

// Binary reports whether format is not human readable
func (f Format) Binary() bool {
	return f == Msgpack
}

var mapType = reflect.TypeOf(map[string]interface{}(nil))

func jsonHandle() *codec.JsonHandle {
	handle := &codec.JsonHandle{}
	handle.Indent = 2
	handle.Canonical = true
	handle.PreferFloat = true
	handle.MapType = mapType
	return handle
}

func msgpackHandle() *codec.MsgpackHandle {
	handle := &codec.MsgpackHandle{}
	handle.WriteExt = true
	handle.RawToString = true
	handle.Canonical = true
	handle.MapType = mapType
	return handle
}

// Encode writes tree to w in the given format
func Encode(w io.Writer, n ast.Node, format Format) error {
	var err error

	switch format {
	case Text:
		_, err = fmt.Fprintln(w, n.String())
	case Repr:
		_, err = fmt.Fprintln(w, ast.Repr(n))
	case JSON:
		err = codec.NewEncoder(w, jsonHandle()).Encode(ast.Dump(n))
		if err == nil {
			_, err = fmt.Fprintln(w)
		}
	case Msgpack:
		err = codec.NewEncoder(w, msgpackHandle()).Encode(ast.Dump(n))
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		err = encoder.Encode(ast.Dump(n))
		if err == nil {
			err = encoder.Close()
		}
	default:
		return errors.Errorf("unsupported output format %q", format)
	}

	return errors.Wrapf(err, "unable to encode %s", format)
}

// Decode reads tree written by Encode
//
// Repr format can't be decoded.
func Decode(r io.Reader, format Format) (ast.Node, error) {
	var (
		doc interface{}
		err error
	)

	switch format {
	case Text:
		var text []byte
		text, err = io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read query")
		}
		return query.Parse(strings.TrimSpace(string(text)))
	case JSON:
		err = codec.NewDecoder(r, jsonHandle()).Decode(&doc)
	case Msgpack:
		err = codec.NewDecoder(r, msgpackHandle()).Decode(&doc)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return nil, errors.Errorf("format %q can't be decoded", format)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", format)
	}

	n, err := ast.Load(doc)
	return n, errors.Wrapf(err, "invalid %s document", format)
}
