package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"

	"github.com/kndndrj/gqlbee/handler"
	"github.com/kndndrj/gqlbee/plugin"
)

const pluginHost = "nvim_gqlbee"

func main() {
	generateManifest := flag.String("manifest", "", "Generate manifest to file (filename of manifest).")
	flag.Parse()

	if *generateManifest != "" {
		logger := plugin.NewFileLogger("", "info")
		p := plugin.New(nil, logger)
		mountEndpoints(p, handler.New(nil, logger))

		err := p.Manifest(pluginHost, pluginHost, *generateManifest)
		if err != nil {
			log.Fatalf("p.Manifest: %s", err)
		}
		log.Printf("generated manifest to %q", *generateManifest)
		return
	}

	// stdout is the rpc channel
	stdout := os.Stdout
	os.Stdout = os.Stderr

	v, err := nvim.New(os.Stdin, stdout, stdout, log.Printf)
	if err != nil {
		log.Fatalf("nvim.New: %s", err)
	}

	logger := plugin.NewLogger(v)
	defer logger.Close()

	// nothing may call neovim before v.Serve runs
	var opts []handler.Option
	if cacheDir, err := os.UserCacheDir(); err == nil {
		opts = append(opts, handler.WithCallLogPath(filepath.Join(cacheDir, "gqlbee", "calllog.json")))
	}

	p := plugin.New(v, logger)
	h := handler.New(v, logger, opts...)
	defer h.Close()

	mountEndpoints(p, h)

	if err := v.Serve(); err != nil {
		logger.Errorf("v.Serve: %s", err)
	}
}
