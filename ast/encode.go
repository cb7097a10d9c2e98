package ast

import (
	"fmt"

	"github.com/pkg/errors"
)

// Document is generic form of a tree, suitable for encoding
//
// Every node becomes a map with "type" key naming the node, e.g.:
//
//	{"type": "Test", "operator": "Equal", "lhs": {"type": "LookupName"}, "rhs": {"type": "Literal", "value": "foo"}}
type Document = map[string]interface{}

// Dump converts tree to Document
func Dump(n Node) Document {
	switch n := n.(type) {
	case *Latest:
		var inner interface{}
		if n.Inner != nil {
			inner = Dump(n.Inner)
		}
		return Document{"type": "Latest", "inner": inner}
	case *Single:
		return Document{"type": "Single", "inner": Dump(n.Inner)}
	case *Test:
		return Document{
			"type":     "Test",
			"operator": n.Operator.Name(),
			"lhs":      DumpLookup(n.Lhs),
			"rhs":      Document{"type": "Literal", "value": n.Rhs.Value()},
		}
	case *And:
		return Document{"type": "And", "lhs": Dump(n.Lhs), "rhs": Dump(n.Rhs)}
	case *Or:
		return Document{"type": "Or", "lhs": Dump(n.Lhs), "rhs": Dump(n.Rhs)}
	case *Not:
		return Document{"type": "Not", "inner": Dump(n.Inner)}
	}
	panic(fmt.Sprintf("unexpected node %T", n))
}

// DumpLookup converts lookup to Document
func DumpLookup(l Lookup) Document {
	switch l := l.(type) {
	case LookupName:
		return Document{"type": "LookupName"}
	case LookupID:
		return Document{"type": "LookupId"}
	case LookupParameter:
		return Document{"type": "LookupParameter", "name": l.Name}
	case LookupThis:
		return Document{"type": "LookupThis", "name": l.Name}
	case LookupEnvironment:
		return Document{"type": "LookupEnvironment", "name": l.Name}
	}
	panic(fmt.Sprintf("unexpected lookup %T", l))
}

// Load converts decoded document back to tree
//
// Maps could be either map[string]interface{} or map[interface{}]interface{},
// as produced by various decoders.
func Load(doc interface{}) (Node, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}

	typ, err := stringField(m, "type")
	if err != nil {
		return nil, err
	}

	switch typ {
	case "Latest":
		if m["inner"] == nil {
			return &Latest{}, nil
		}
		inner, err := Load(m["inner"])
		if err != nil {
			return nil, errors.Wrap(err, "Latest.inner")
		}
		return &Latest{Inner: inner}, nil
	case "Single":
		inner, err := Load(m["inner"])
		if err != nil {
			return nil, errors.Wrap(err, "Single.inner")
		}
		return &Single{Inner: inner}, nil
	case "Not":
		inner, err := Load(m["inner"])
		if err != nil {
			return nil, errors.Wrap(err, "Not.inner")
		}
		return &Not{Inner: inner}, nil
	case "And", "Or":
		lhs, err := Load(m["lhs"])
		if err != nil {
			return nil, errors.Wrapf(err, "%s.lhs", typ)
		}
		rhs, err := Load(m["rhs"])
		if err != nil {
			return nil, errors.Wrapf(err, "%s.rhs", typ)
		}
		if typ == "And" {
			return &And{Lhs: lhs, Rhs: rhs}, nil
		}
		return &Or{Lhs: lhs, Rhs: rhs}, nil
	case "Test":
		return loadTest(m)
	}

	return nil, errors.Errorf("unknown node type %q", typ)
}

func loadTest(m map[string]interface{}) (Node, error) {
	opName, err := stringField(m, "operator")
	if err != nil {
		return nil, errors.Wrap(err, "Test")
	}
	op, ok := OperatorByName(opName)
	if !ok {
		return nil, errors.Errorf("Test: unknown operator %q", opName)
	}

	lhs, err := LoadLookup(m["lhs"])
	if err != nil {
		return nil, errors.Wrap(err, "Test.lhs")
	}

	rhs, err := asMap(m["rhs"])
	if err != nil {
		return nil, errors.Wrap(err, "Test.rhs")
	}
	if typ, _ := stringField(rhs, "type"); typ != "Literal" {
		return nil, errors.Errorf("Test.rhs: expected Literal, got %q", typ)
	}
	lit, err := loadLiteral(rhs["value"])
	if err != nil {
		return nil, errors.Wrap(err, "Test.rhs")
	}

	return &Test{Operator: op, Lhs: lhs, Rhs: lit}, nil
}

// LoadLookup converts decoded document back to Lookup
func LoadLookup(doc interface{}) (Lookup, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}

	typ, err := stringField(m, "type")
	if err != nil {
		return nil, err
	}

	switch typ {
	case "LookupName":
		return LookupName{}, nil
	case "LookupId":
		return LookupID{}, nil
	}

	name, err := stringField(m, "name")
	if err != nil {
		return nil, errors.Wrap(err, typ)
	}

	switch typ {
	case "LookupParameter":
		return LookupParameter{Name: name}, nil
	case "LookupThis":
		return LookupThis{Name: name}, nil
	case "LookupEnvironment":
		return LookupEnvironment{Name: name}, nil
	}

	return nil, errors.Errorf("unknown lookup type %q", typ)
}

func loadLiteral(v interface{}) (Literal, error) {
	switch v := v.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(v), nil
	case []byte:
		return String(string(v)), nil
	case bool:
		return Bool(v), nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	}
	return Literal{}, errors.Errorf("unsupported literal value %#v", v)
}

func asMap(doc interface{}) (map[string]interface{}, error) {
	switch doc := doc.(type) {
	case map[string]interface{}:
		return doc, nil
	case map[interface{}]interface{}:
		result := make(map[string]interface{}, len(doc))
		for k, v := range doc {
			switch k := k.(type) {
			case string:
				result[k] = v
			case []byte:
				result[string(k)] = v
			default:
				return nil, errors.Errorf("unexpected key %#v", k)
			}
		}
		return result, nil
	case nil:
		return nil, errors.New("missing node")
	}
	return nil, errors.Errorf("expected node, got %T", doc)
}

func stringField(m map[string]interface{}, key string) (string, error) {
	switch v := m[key].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", errors.Errorf("missing %q", key)
	default:
		return "", errors.Errorf("%q should be a string, got %T", key, v)
	}
}
