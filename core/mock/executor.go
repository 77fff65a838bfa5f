package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/kndndrj/gqlbee/core"
)

// NewExecutor returns an executor that returns the response after the configured
// side effects and sleep.
func NewExecutor(response []byte, opts ...ExecutorOption) core.Executor {
	config := &executorConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return func(ctx context.Context) ([]byte, error) {
		if config.sideEffect != nil {
			err := config.sideEffect(ctx)
			if err != nil {
				return nil, fmt.Errorf("side effect error: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(config.sleep):
		}

		return response, nil
	}
}

// WaitForCancel is a side effect that blocks until the context is done
func WaitForCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(10 * time.Second):
	}
	return nil
}
