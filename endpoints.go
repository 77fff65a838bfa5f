package main

import (
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/kndndrj/gqlbee/core"
	"github.com/kndndrj/gqlbee/handler"
	"github.com/kndndrj/gqlbee/plugin"
)

func mountEndpoints(p *plugin.Plugin, h *handler.Handler) {
	p.RegisterEndpoint(
		"GqlbeeConfigure",
		func(args *struct {
			Opts *struct {
				Endpoint string `msgpack:"endpoint"`
				Token    string `msgpack:"token"`
				// request timeout in seconds
				Timeout int `msgpack:"timeout"`
			} `msgpack:",array"`
		},
		) error {
			return h.Configure(args.Opts.Endpoint, args.Opts.Token, time.Duration(args.Opts.Timeout)*time.Second)
		})

	p.RegisterEndpoint(
		"GqlbeeParse",
		func(args *struct {
			Text string `msgpack:",array"`
		},
		) (any, error) {
			table, err := h.ParseResponse(args.Text)
			return handler.WrapTable(table), err
		})

	p.RegisterEndpoint(
		"GqlbeeExecute",
		func(args *struct {
			Query     string `msgpack:",array"`
			Variables map[string]any
		},
		) (any, error) {
			call, err := h.Execute(args.Query, args.Variables)
			return handler.WrapCall(call), err
		})

	p.RegisterEndpoint(
		"GqlbeeCallCancel",
		func(args *struct {
			ID core.CallID `msgpack:",array"`
		},
		) (any, error) {
			return nil, h.CallCancel(args.ID)
		})

	p.RegisterEndpoint(
		"GqlbeeCallSelect",
		func(args *struct {
			ID core.CallID `msgpack:",array"`
		},
		) (any, error) {
			table, err := h.CallSelect(args.ID)
			return handler.WrapTable(table), err
		})

	p.RegisterEndpoint(
		"GqlbeeGetCalls",
		func() (any, error) {
			return handler.WrapCalls(h.Calls()), nil
		})

	p.RegisterEndpoint(
		"GqlbeeGetColumns",
		func() (any, error) {
			table, err := h.Current()
			if err != nil {
				return nil, err
			}
			return table.Columns(), nil
		})

	p.RegisterEndpoint(
		"GqlbeeDisplayResult",
		func(args *struct {
			Opts *struct {
				Buffer int `msgpack:"buffer"`
				From   int `msgpack:"from"`
				To     int `msgpack:"to"`
			} `msgpack:",array"`
		},
		) (any, error) {
			return h.DisplayResult(nvim.Buffer(args.Opts.Buffer), args.Opts.From, args.Opts.To)
		})

	p.RegisterEndpoint(
		"GqlbeeStoreResult",
		func(args *struct {
			Format string `msgpack:",array"`
			Output string
			Opts   *struct {
				From     int `msgpack:"from"`
				To       int `msgpack:"to"`
				ExtraArg any `msgpack:"extra_arg"`
			}
		},
		) (any, error) {
			return nil, h.StoreResult(args.Format, args.Output, args.Opts.From, args.Opts.To, args.Opts.ExtraArg)
		})

	p.RegisterEndpoint(
		"GqlbeeExport",
		func(args *struct {
			Format string `msgpack:",array"`
			Opts   *struct {
				BaseName string `msgpack:"base_name"`
				// if set, the file is written there instead of being returned
				Dir string `msgpack:"dir"`
			}
		},
		) (any, error) {
			if args.Opts.Dir != "" {
				return h.ExportToDir(args.Format, args.Opts.BaseName, args.Opts.Dir)
			}
			blob, err := h.Export(args.Format, args.Opts.BaseName)
			return handler.WrapBlob(blob), err
		})
}
