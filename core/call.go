package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNoResponse = errors.New("call has no response")

type (
	CallID string

	// Executor performs the request of a call and returns the raw response body
	Executor func(context.Context) ([]byte, error)

	// Call is a single GraphQL request with its raw response
	Call struct {
		id        CallID
		query     string
		state     CallState
		timeTaken time.Duration
		timestamp time.Time

		response   []byte
		cancelFunc func()

		// any error that might occur during execution
		err  error
		done chan struct{}
		mu   sync.RWMutex
	}
)

// callPersistent is used for marshaling and unmarshaling the call
type callPersistent struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	State     string `json:"state"`
	TimeTaken int64  `json:"time_taken_us"`
	Timestamp int64  `json:"timestamp_us"`
	Error     string `json:"error,omitempty"`
	Response  string `json:"response,omitempty"`
}

func (c *Call) toPersistent() *callPersistent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	errMsg := ""
	if c.err != nil {
		errMsg = c.err.Error()
	}

	return &callPersistent{
		ID:        string(c.id),
		Query:     c.query,
		State:     c.state.String(),
		TimeTaken: c.timeTaken.Microseconds(),
		Timestamp: c.timestamp.UnixMicro(),
		Error:     errMsg,
		Response:  string(c.response),
	}
}

func (c *Call) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toPersistent())
}

func (c *Call) UnmarshalJSON(data []byte) error {
	var alias callPersistent

	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	done := make(chan struct{})
	close(done)

	state := CallStateFromString(alias.State)
	// interrupted calls can't be resumed
	if state == CallStateExecuting {
		state = CallStateUnknown
	}

	var callErr error
	if alias.Error != "" {
		callErr = errors.New(alias.Error)
	}

	var response []byte
	if alias.Response != "" {
		response = []byte(alias.Response)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.id = CallID(alias.ID)
	c.query = alias.Query
	c.state = state
	c.timeTaken = time.Duration(alias.TimeTaken) * time.Microsecond
	c.timestamp = time.UnixMicro(alias.Timestamp)
	c.err = callErr
	c.response = response
	c.done = done

	return nil
}

// NewCall starts the executor in the background and returns the call immediately.
// onEvent is triggered on every state change.
func NewCall(executor Executor, query string, onEvent func(CallState, *Call)) *Call {
	id := CallID(uuid.New().String())
	c := &Call{
		id:    id,
		query: query,
		state: CallStateUnknown,

		done: make(chan struct{}),
	}

	eventsCh := make(chan CallState, 10)

	ctx, cancel := context.WithCancel(context.Background())
	c.timestamp = time.Now()
	c.cancelFunc = cancel

	// event function handler, done is closed once every event is handled
	go func() {
		defer close(c.done)
		for state := range eventsCh {
			c.mu.Lock()
			if c.state.isFinal() {
				c.mu.Unlock()
				continue
			}
			c.state = state
			c.mu.Unlock()

			// trigger event callback
			if onEvent != nil {
				onEvent(state, c)
			}
		}
	}()

	go func() {
		defer close(eventsCh)
		defer cancel()

		// execute the function
		eventsCh <- CallStateExecuting
		response, err := executor(ctx)

		c.mu.Lock()
		c.timeTaken = time.Since(c.timestamp)
		switch {
		case ctx.Err() != nil:
			c.err = ctx.Err()
			c.mu.Unlock()
			eventsCh <- CallStateCanceled
		case err != nil:
			c.err = err
			c.mu.Unlock()
			eventsCh <- CallStateExecutingFailed
		default:
			c.response = response
			c.mu.Unlock()
			eventsCh <- CallStateRetrieved
		}
	}()

	return c
}

func (c *Call) GetID() CallID {
	return c.id
}

func (c *Call) GetQuery() string {
	return c.query
}

func (c *Call) GetState() CallState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Call) GetTimeTaken() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeTaken
}

func (c *Call) GetTimestamp() time.Time {
	return c.timestamp
}

func (c *Call) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Done returns a non-buffered channel that is closed when
// call finishes and all state change callbacks returned.
func (c *Call) Done() chan struct{} {
	return c.done
}

func (c *Call) Cancel() {
	if c.GetState() > CallStateExecuting {
		return
	}
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
}

// GetResponse returns the raw response body of a finished call
func (c *Call) GetResponse() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.response == nil {
		if c.err != nil {
			return nil, fmt.Errorf("call failed: %w", c.err)
		}
		return nil, ErrNoResponse
	}
	return c.response, nil
}
