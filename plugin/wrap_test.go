package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type args struct {
	ID string `msgpack:",array"`
}

func TestPlugin_WrapRecoversPanics(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "gqlbee.log")
	logger := NewFileLogger(path, "debug")
	p := New(nil, logger)

	withResult := p.wrap("GqlbeeBroken", func(a *args) (any, error) {
		panic("index out of range")
	}).(func(*args) (any, error))

	res, err := withResult(&args{ID: "x"})
	r.Nil(res)
	r.ErrorContains(err, "GqlbeeBroken: internal error: index out of range")

	errOnly := p.wrap("GqlbeeBrokenToo", func(a *args) error {
		panic(errors.New("nil table"))
	}).(func(*args) error)
	r.ErrorContains(errOnly(&args{}), "nil table")

	notification := p.wrap("GqlbeeNotify", func(a *args) {
		panic("dropped")
	}).(func(*args))
	r.NotPanics(func() { notification(&args{}) })

	logger.Close()
	b, err := os.ReadFile(path)
	r.NoError(err)
	r.Contains(string(b), "GqlbeeBroken: internal error")
	r.Contains(string(b), "GqlbeeNotify: internal error: dropped")
}

func TestPlugin_WrapPassesResults(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "gqlbee.log")
	logger := NewFileLogger(path, "debug")
	p := New(nil, logger)

	ok := p.wrap("GqlbeeEcho", func(a *args) (any, error) {
		return a.ID, nil
	}).(func(*args) (any, error))

	res, err := ok(&args{ID: "call-1"})
	r.NoError(err)
	r.Equal("call-1", res)

	failing := p.wrap("GqlbeeFail", func(a *args) (any, error) {
		return nil, errors.New("unknown call")
	}).(func(*args) (any, error))

	_, err = failing(&args{})
	r.EqualError(err, "unknown call")

	logger.Close()
	b, err := os.ReadFile(path)
	r.NoError(err)
	r.Contains(string(b), "GqlbeeEcho done in")
	r.Contains(string(b), "GqlbeeFail failed after")
	r.Contains(string(b), "unknown call")
}
