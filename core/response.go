package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrMalformedInput = errors.New("input is not valid JSON")
	ErrNoTabularData  = errors.New("no tabular data found in response")
	ErrEmptyExport    = errors.New("nothing to export: table has no rows or columns")
)

// GraphQLError is a single entry of the response "errors" list
type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLErrors is returned when a response carries a non-empty "errors" list.
type GraphQLErrors struct {
	Errors []GraphQLError
}

func (e *GraphQLErrors) Error() string {
	messages := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		messages[i] = ge.Message
	}
	return strings.Join(messages, ", ")
}

// Response is a parsed GraphQL response
type Response struct {
	// Data is the "data" member. It does not exist if the response has none.
	Data   gjson.Result
	Errors []GraphQLError
}

// ParseResponse parses raw response text.
// Only invalid JSON is an error here, see Response.Table for the rest.
func ParseResponse(input []byte) (*Response, error) {
	if !gjson.ValidBytes(input) {
		return nil, ErrMalformedInput
	}

	doc := gjson.ParseBytes(input)
	resp := &Response{
		Data: doc.Get("data"),
	}

	// only a list counts, servers send "errors": null on success
	if errs := doc.Get("errors"); errs.IsArray() {
		errs.ForEach(func(_, value gjson.Result) bool {
			msg := value.Get("message")
			if msg.Exists() {
				resp.Errors = append(resp.Errors, GraphQLError{Message: msg.String()})
			} else {
				resp.Errors = append(resp.Errors, GraphQLError{Message: value.Raw})
			}
			return true
		})
	}

	return resp, nil
}

// HasErrors reports whether the response carries GraphQL errors
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// Table flattens the response into a table snapshot.
// GraphQL errors short-circuit the extraction even if data is present.
func (r *Response) Table(formatter *ValueFormatter) (*Table, error) {
	if r.HasErrors() {
		return nil, &GraphQLErrors{Errors: r.Errors}
	}

	rows, err := DiscoverRows(r.Data)
	if err != nil {
		return nil, err
	}

	return NewTable(rows, formatter), nil
}

// Flatten parses the input and flattens it into a table
func Flatten(input []byte, formatter *ValueFormatter) (*Table, error) {
	resp, err := ParseResponse(input)
	if err != nil {
		return nil, err
	}

	table, err := resp.Table(formatter)
	if err != nil {
		return nil, fmt.Errorf("resp.Table: %w", err)
	}

	return table, nil
}
