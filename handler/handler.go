package handler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/neovim/go-client/nvim"
	"golang.org/x/oauth2"

	"github.com/kndndrj/gqlbee/client"
	"github.com/kndndrj/gqlbee/core"
	"github.com/kndndrj/gqlbee/core/format"
	"github.com/kndndrj/gqlbee/plugin"
)

var (
	ErrNoClient  = errors.New("no endpoint configured")
	ErrNoCurrent = errors.New("no table has been produced yet")
)

type Handler struct {
	vim    *nvim.Nvim
	log    *plugin.Logger
	events *eventBus

	client      *client.Client
	formatter   *core.ValueFormatter
	callLogPath string

	lookupCall map[core.CallID]*core.Call
	callOrder  []core.CallID
	current    *core.Table
	// query that produced the current table, used for export names
	currentQuery string

	mu sync.RWMutex
}

func New(vim *nvim.Nvim, logger *plugin.Logger, opts ...Option) *Handler {
	h := &Handler{
		vim: vim,
		log: logger,
		events: &eventBus{
			vim: vim,
			log: logger,
		},

		formatter:  core.NewValueFormatter(),
		lookupCall: make(map[core.CallID]*core.Call),
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.callLogPath != "" {
		err := h.restoreCallLog()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			// the logger may need the rpc channel which is not served yet
			go h.log.Infof("h.restoreCallLog: %s", err)
		}
	}

	return h
}

func (h *Handler) Close() {
	h.mu.RLock()
	calls := make([]*core.Call, 0, len(h.lookupCall))
	for _, c := range h.lookupCall {
		calls = append(calls, c)
	}
	h.mu.RUnlock()

	// wait for unfinished calls
	for _, c := range calls {
		select {
		case <-c.Done():
		case <-time.After(10 * time.Second):
		}
	}

	if h.callLogPath == "" {
		return
	}

	err := h.storeCallLog()
	if err != nil {
		h.log.Infof("h.storeCallLog: %s", err)
	}
}

// SetClient replaces the client used by Execute
func (h *Handler) SetClient(c *client.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.client = c
}

// Configure builds a client for endpoint. The endpoint and the token may
// contain templates, the token is expanded again whenever it expires.
func (h *Handler) Configure(endpoint, token string, timeout time.Duration) error {
	endpoint, err := core.Expand(endpoint)
	if err != nil {
		return fmt.Errorf("core.Expand: %w", err)
	}
	if endpoint == "" {
		return fmt.Errorf("endpoint is empty")
	}

	opts := []client.Option{client.WithLogger(h.log)}
	if timeout > 0 {
		opts = append(opts, client.WithTimeout(timeout))
	}

	var tokens oauth2.TokenSource
	if token != "" {
		tokens = client.TemplateToken(token, client.DefaultTokenLifetime)
	}

	h.SetClient(client.New(endpoint, tokens, opts...))
	return nil
}

func (h *Handler) setCurrent(table *core.Table, query string) {
	h.mu.Lock()
	h.current = table
	h.currentQuery = query
	h.mu.Unlock()

	h.events.TableChanged(table)
}

// ParseResponse flattens pasted response text into the current table.
// The previous table is dropped even if parsing fails.
func (h *Handler) ParseResponse(text string) (*core.Table, error) {
	table, err := core.Flatten([]byte(text), h.formatter)
	if err != nil {
		h.setCurrent(nil, "")
		return nil, err
	}

	h.setCurrent(table, "")
	return table, nil
}

// Execute sends the query asynchronously. A retrieved response
// replaces the current table.
func (h *Handler) Execute(query string, variables map[string]any) (*core.Call, error) {
	h.mu.RLock()
	cl := h.client
	h.mu.RUnlock()

	if cl == nil {
		return nil, ErrNoClient
	}

	if err := client.ValidateQuery(query); err != nil {
		return nil, err
	}

	call := core.NewCall(cl.Executor(query, variables), query, func(state core.CallState, c *core.Call) {
		switch state {
		case core.CallStateRetrieved:
			if err := h.flattenCall(c); err != nil {
				h.log.Errorf("h.flattenCall: %s", err)
			}
		case core.CallStateExecutingFailed:
			h.log.Errorf("call %s failed: %s", c.GetID(), c.Err())
		}

		h.events.CallStateChanged(c)
	})

	h.mu.Lock()
	h.lookupCall[call.GetID()] = call
	h.callOrder = append(h.callOrder, call.GetID())
	h.mu.Unlock()

	return call, nil
}

func (h *Handler) flattenCall(call *core.Call) error {
	response, err := call.GetResponse()
	if err != nil {
		return fmt.Errorf("call.GetResponse: %w", err)
	}

	table, err := core.Flatten(response, h.formatter)
	if err != nil {
		h.setCurrent(nil, "")
		return err
	}

	h.setCurrent(table, call.GetQuery())
	return nil
}

func (h *Handler) getCall(callID core.CallID) (*core.Call, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	call, ok := h.lookupCall[callID]
	if !ok {
		return nil, fmt.Errorf("unknown call with id: %q", callID)
	}
	return call, nil
}

func (h *Handler) CallCancel(callID core.CallID) error {
	call, err := h.getCall(callID)
	if err != nil {
		return err
	}

	call.Cancel()
	return nil
}

// CallSelect makes the stored response of a finished call the current table
func (h *Handler) CallSelect(callID core.CallID) (*core.Table, error) {
	call, err := h.getCall(callID)
	if err != nil {
		return nil, err
	}

	if err := h.flattenCall(call); err != nil {
		return nil, err
	}
	return h.Current()
}

// Calls returns all calls in the order they were made
func (h *Handler) Calls() []*core.Call {
	h.mu.RLock()
	defer h.mu.RUnlock()

	calls := make([]*core.Call, 0, len(h.callOrder))
	for _, id := range h.callOrder {
		if c, ok := h.lookupCall[id]; ok {
			calls = append(calls, c)
		}
	}
	return calls
}

func (h *Handler) Current() (*core.Table, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.current == nil {
		return nil, ErrNoCurrent
	}
	return h.current, nil
}

func (h *Handler) DisplayResult(buffer nvim.Buffer, from, to int) (int, error) {
	table, err := h.Current()
	if err != nil {
		return 0, err
	}

	text, err := table.Format(format.NewTable(), from, to)
	if err != nil {
		return 0, fmt.Errorf("table.Format: %w", err)
	}

	_, err = newBuffer(h.vim, buffer).Write(text)
	if err != nil {
		return 0, fmt.Errorf("buffer.Write: %w", err)
	}

	return table.Len(), nil
}

func (h *Handler) StoreResult(fmat, out string, from, to int, arg ...any) error {
	formatter, err := format.FromName(fmat)
	if err != nil {
		return fmt.Errorf("format.FromName: %w", err)
	}

	table, err := h.Current()
	if err != nil {
		return err
	}

	text, err := table.Format(formatter, from, to)
	if err != nil {
		return fmt.Errorf("table.Format: %w", err)
	}

	writer, cleanup, err := h.getStoreWriter(out, arg...)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = writer.Write(text)
	if err != nil {
		return fmt.Errorf("writer.Write: %w", err)
	}

	return nil
}

// Export formats the whole current table as a downloadable file.
// An empty baseName is derived from the root fields of the query.
func (h *Handler) Export(fmat, baseName string) (*format.Blob, error) {
	exporter, err := format.ExporterFromName(fmat)
	if err != nil {
		return nil, fmt.Errorf("format.ExporterFromName: %w", err)
	}

	h.mu.RLock()
	table, query := h.current, h.currentQuery
	h.mu.RUnlock()

	if baseName == "" && query != "" {
		if fields, err := client.RootFields(query); err == nil && len(fields) > 0 {
			baseName = fields[0]
		}
	}

	blob, err := format.Export(table, exporter, baseName)
	if err != nil {
		return nil, fmt.Errorf("format.Export: %w", err)
	}
	return blob, nil
}

// ExportToDir writes the export blob into dir and returns the file path
func (h *Handler) ExportToDir(fmat, baseName, dir string) (string, error) {
	blob, err := h.Export(fmat, baseName)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, blob.FileName)
	if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile: %w", err)
	}
	return path, nil
}

func (h *Handler) getStoreWriter(output string, arg ...any) (writer io.Writer, cleanup func(), err error) {
	switch output {
	case "file":
		if len(arg) < 1 || arg[0] == "" {
			return nil, func() {}, fmt.Errorf("no output path provided")
		}

		path, ok := arg[0].(string)
		if !ok {
			return nil, func() {}, fmt.Errorf("invalid output path: not a string")
		}

		writer, err := os.Create(path)
		if err != nil {
			return nil, func() {}, err
		}

		return writer, func() { writer.Close() }, nil
	case "buffer":
		if h.vim == nil {
			return nil, func() {}, fmt.Errorf("buffer output requires neovim")
		}
		if len(arg) < 1 {
			return nil, func() {}, fmt.Errorf("no buffer provided")
		}

		buf, ok := arg[0].(int64)
		if ok {
			return newBuffer(h.vim, nvim.Buffer(buf)), func() {}, nil
		}

		bufstr, ok := arg[0].(string)
		if ok {
			buf, err := strconv.ParseInt(bufstr, 10, 64)
			return newBuffer(h.vim, nvim.Buffer(buf)), func() {}, err
		}

		return nil, func() {}, fmt.Errorf("buffer number not an int")

	case "yank":
		if h.vim == nil {
			return nil, func() {}, fmt.Errorf("yank output requires neovim")
		}
		register := ""
		if len(arg) > 0 {
			register, _ = arg[0].(string)
		}

		return newYankRegister(h.vim, register), func() {}, nil
	}

	return nil, func() {}, fmt.Errorf("store output: %q is not supported", output)
}
