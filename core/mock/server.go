package mock

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// Request is a request captured by the mocked GraphQL server
type Request struct {
	Header http.Header
	Body   []byte
}

// NewServer returns a running GraphQL endpoint mock.
// The caller is responsible for closing it.
func NewServer(response []byte, opts ...ServerOption) *httptest.Server {
	config := &serverConfig{
		status: http.StatusOK,
	}
	for _, opt := range opts {
		opt(config)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if config.onRequest != nil {
			config.onRequest(&Request{Header: r.Header.Clone(), Body: body})
		}

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if config.token != "" {
			if strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") != config.token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(config.status)
		_, _ = w.Write(response)
	}))
}
