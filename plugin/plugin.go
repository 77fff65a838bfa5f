package plugin

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"text/template"
	"time"

	"github.com/neovim/go-client/nvim"
)

var manifestTemplate = template.Must(template.New("manifest.lua").Parse(`-- generated by {{ .Executable }}, do not edit
local M = {}

function M.register(host)
  vim.fn["remote#host#Register"]({{ printf "%q" .Host }}, "x", host)
  vim.fn["remote#host#RegisterPlugin"]({{ printf "%q" .Host }}, "0", {
{{- range .Specs }}
    { type = {{ printf "%q" .Type }}, name = {{ printf "%q" .Name }}, sync = {{ if .Sync }}1{{ else }}0{{ end }}, opts = vim.empty_dict() },
{{- end }}
  })
end

return M
`))

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Plugin registers gqlbee endpoints on a neovim rpc channel.
// A nil vim only collects the endpoints, e.g. for the manifest.
type Plugin struct {
	vim       *nvim.Nvim
	log       *Logger
	endpoints []*endpointSpec
}

func New(v *nvim.Nvim, l *Logger) *Plugin {
	return &Plugin{
		vim: v,
		log: l,
	}
}

type endpointSpec struct {
	method string
	Type   string
	Name   string
	Sync   bool
}

// RegisterEndpoint registers fn as the handler of the vim function name.
// fn has one of the forms
//
//	func([v *nvim.Nvim,] args {arrayType}) ({resultType}, error)
//	func([v *nvim.Nvim,] args {arrayType}) error
//
// Functions without results are registered as notifications.
func (p *Plugin) RegisterEndpoint(name string, fn any) {
	typ := reflect.TypeOf(fn)
	if typ == nil || typ.Kind() != reflect.Func {
		panic(fmt.Sprintf("endpoint %q: handler is not a function", name))
	}

	spec := &endpointSpec{
		method: "0:function:" + name,
		Type:   "function",
		Name:   name,
		Sync:   typ.NumOut() > 0,
	}
	p.endpoints = append(p.endpoints, spec)

	if p.vim == nil {
		return
	}
	if err := p.vim.RegisterHandler(spec.method, p.wrap(name, fn)); err != nil {
		panic(fmt.Errorf("p.vim.RegisterHandler: %w", err))
	}
}

// wrap logs failed calls and turns a panicking handler into an error result
func (p *Plugin) wrap(name string, fn any) any {
	v := reflect.ValueOf(fn)
	typ := v.Type()

	errIndex := -1
	if n := typ.NumOut(); n > 0 && typ.Out(n-1) == errorType {
		errIndex = n - 1
	}

	return reflect.MakeFunc(typ, func(args []reflect.Value) (results []reflect.Value) {
		start := time.Now()

		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err := fmt.Errorf("%s: internal error: %v", name, r)
			p.log.Errorf("%s", err)
			results = failedResults(typ, errIndex, err)
		}()

		results = v.Call(args)

		if errIndex >= 0 {
			if err, ok := results[errIndex].Interface().(error); ok && err != nil {
				p.log.Infof("%s failed after %s: %s", name, time.Since(start), err)
				return results
			}
		}
		p.log.Debugf("%s done in %s", name, time.Since(start))
		return results
	}).Interface()
}

func failedResults(typ reflect.Type, errIndex int, err error) []reflect.Value {
	results := make([]reflect.Value, typ.NumOut())
	for i := range results {
		results[i] = reflect.Zero(typ.Out(i))
	}
	if errIndex >= 0 {
		results[errIndex] = reflect.ValueOf(&err).Elem()
	}
	return results
}

// Endpoints returns names of all registered endpoints in sorted order
func (p *Plugin) Endpoints() []string {
	names := make([]string, len(p.endpoints))
	for i, spec := range p.endpoints {
		names[i] = spec.Name
	}
	sort.Strings(names)
	return names
}

// WriteManifest writes the lua module that registers the host and its endpoints
func (p *Plugin) WriteManifest(w io.Writer, host, executable string) error {
	specs := make([]*endpointSpec, len(p.endpoints))
	copy(specs, p.endpoints)
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].method < specs[j].method
	})

	err := manifestTemplate.Execute(w, struct {
		Host       string
		Executable string
		Specs      []*endpointSpec
	}{
		Host:       host,
		Executable: executable,
		Specs:      specs,
	})
	if err != nil {
		return fmt.Errorf("manifestTemplate.Execute: %w", err)
	}
	return nil
}

// Manifest writes the manifest into the file at path
func (p *Plugin) Manifest(host, executable, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	return p.WriteManifest(file, host, executable)
}
