package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/kndndrj/gqlbee/core"
)

var ErrToken = errors.New("failed to acquire access token")

// StatusError is returned when the endpoint answers with a non 2xx status
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d, response body %s", e.Code, e.Body)
}

// Logger is the subset of the plugin logger used by the client
type Logger interface {
	Debugf(format string, args ...any)
}

type request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName,omitempty"`
}

// Client sends GraphQL requests to a single endpoint
type Client struct {
	endpoint string
	tokens   oauth2.TokenSource
	http     *http.Client
	headers  map[string]string
	log      Logger
}

// New creates a client for endpoint. Tokens are optional,
// a nil source sends requests without authorization.
func New(endpoint string, tokens oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		tokens:   tokens,
		http:     &http.Client{Timeout: 30 * time.Second},
		headers:  make(map[string]string),
		log:      nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query validates and sends the query, returning the raw response body.
// Variables default to an empty object.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	if variables == nil {
		variables = map[string]any{}
	}

	payload, err := json.Marshal(&request{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrToken, err)
		}
		if !token.Valid() {
			return nil, fmt.Errorf("%w: token is empty or expired", ErrToken)
		}
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	c.log.Debugf("sending request %s to %s", requestID, c.endpoint)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("c.http.Do: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	c.log.Debugf("request %s returned status %d (%d bytes)", requestID, res.StatusCode, len(body))

	if res.StatusCode > 299 || res.StatusCode < 200 {
		return nil, &StatusError{Code: res.StatusCode, Body: body}
	}

	return body, nil
}

// Executor binds the query to the client for asynchronous calls
func (c *Client) Executor(query string, variables map[string]any) core.Executor {
	return func(ctx context.Context) ([]byte, error) {
		return c.Query(ctx, query, variables)
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
