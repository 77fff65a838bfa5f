package mock

import (
	"context"
	"time"
)

type executorConfig struct {
	sleep      time.Duration
	sideEffect func(context.Context) error
}

type ExecutorOption func(*executorConfig)

func ExecutorWithSleep(s time.Duration) ExecutorOption {
	return func(c *executorConfig) {
		c.sleep = s
	}
}

func ExecutorWithSideEffect(sideEffect func(context.Context) error) ExecutorOption {
	return func(c *executorConfig) {
		if c.sideEffect != nil {
			panic("side effect already registered")
		}
		c.sideEffect = sideEffect
	}
}
