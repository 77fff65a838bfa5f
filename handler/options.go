package handler

import (
	"github.com/kndndrj/gqlbee/client"
	"github.com/kndndrj/gqlbee/core"
)

type Option func(*Handler)

func WithClient(c *client.Client) Option {
	return func(h *Handler) {
		h.client = c
	}
}

func WithValueFormatter(vf *core.ValueFormatter) Option {
	return func(h *Handler) {
		if vf != nil {
			h.formatter = vf
		}
	}
}

// WithCallLogPath enables persisting calls between sessions
func WithCallLogPath(path string) Option {
	return func(h *Handler) {
		h.callLogPath = path
	}
}
