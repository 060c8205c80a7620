package language

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ValidateSchema loads source as a complete schema (with the built-in
// scalars and introspection types) and reports the first validation error.
func ValidateSchema(name, source string) error {
	_, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return err
	}
	return nil
}

// ParseType parses a type expression such as "[User!]!".
func ParseType(expr string) (*Type, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: "query($t: " + expr + ") { __typename }"})
	if err != nil {
		return nil, fmt.Errorf("invalid type %q: %w", expr, err)
	}
	if len(doc.Operations) != 1 || len(doc.Operations[0].VariableDefinitions) != 1 {
		return nil, fmt.Errorf("invalid type %q", expr)
	}
	return doc.Operations[0].VariableDefinitions[0].Type, nil
}

// ArgumentValues resolves the arguments of field against vars. Variables
// that are not supplied are left out, as if the argument were absent.
func ArgumentValues(field *Field, vars map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(field.Arguments))
	for _, arg := range field.Arguments {
		if arg.Value == nil {
			continue
		}
		if arg.Value.Kind == Variable {
			v, ok := vars[arg.Value.Raw]
			if !ok {
				continue
			}
			out[arg.Name] = v
			continue
		}
		v, err := arg.Value.Value(vars)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg.Name, err)
		}
		out[arg.Name] = v
	}
	return out, nil
}

// FindField returns the first field named name in the selection set of the
// first operation of doc, searching depth-first.
func FindField(doc *QueryDocument, name string) (*Field, error) {
	if len(doc.Operations) == 0 {
		return nil, errors.New("document has no operation")
	}
	if f := findField(doc.Operations[0].SelectionSet, name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("field %q not selected", name)
}

func findField(set SelectionSet, name string) *Field {
	for _, sel := range set {
		switch s := sel.(type) {
		case *Field:
			if s.Name == name {
				return s
			}
			if f := findField(s.SelectionSet, name); f != nil {
				return f
			}
		case *InlineFragment:
			if f := findField(s.SelectionSet, name); f != nil {
				return f
			}
		}
	}
	return nil
}
