package client

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
)

var ErrInvalidQuery = errors.New("invalid query")

func parseQuery(query string) (*ast.QueryDocument, error) {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: query})
	if gqlErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, gqlErr.Message)
	}
	if len(doc.Operations) < 1 {
		return nil, fmt.Errorf("%w: no operation defined", ErrInvalidQuery)
	}
	return doc, nil
}

// ValidateQuery checks the syntax of a query document.
// It does not validate against a schema.
func ValidateQuery(query string) error {
	_, err := parseQuery(query)
	return err
}

// RootFields returns the response keys (aliases or names) of the root fields
// of the first operation.
func RootFields(query string) ([]string, error) {
	doc, err := parseQuery(query)
	if err != nil {
		return nil, err
	}

	var fields []string
	for _, sel := range doc.Operations[0].SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}
		if field.Alias != "" {
			fields = append(fields, field.Alias)
		} else {
			fields = append(fields, field.Name)
		}
	}
	return fields, nil
}
