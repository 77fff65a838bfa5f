package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kndndrj/gqlbee/config"
	"github.com/kndndrj/gqlbee/core"
	"github.com/kndndrj/gqlbee/core/format"
	"github.com/kndndrj/gqlbee/plugin"
)

func newLogger(v *viper.Viper) *plugin.Logger {
	return plugin.NewFileLogger(v.GetString(config.KeyLogFilePath), v.GetString(config.KeyLogLevel))
}

func newValueFormatter(v *viper.Viper) (*core.ValueFormatter, error) {
	opts := []core.ValueFormatterOption{
		core.WithDateLayout(v.GetString(config.KeyDateLayout)),
		core.WithTimeLayout(v.GetString(config.KeyTimeLayout)),
	}

	var markers []string
	for _, m := range strings.Split(v.GetString(config.KeyCurrencyMarkers), ",") {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, m)
		}
	}
	opts = append(opts, core.WithCurrencyMarkers(markers...))

	if tz := v.GetString(config.KeyTimezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("time.LoadLocation: %w", err)
		}
		opts = append(opts, core.WithLocation(loc))
	}

	return core.NewValueFormatter(opts...), nil
}

// render formats the whole table. Exporters refuse empty tables.
func render(table *core.Table, name, baseName string) (data []byte, fileName string, err error) {
	if exporter, err := format.ExporterFromName(name); err == nil {
		blob, err := format.Export(table, exporter, baseName)
		if err != nil {
			return nil, "", fmt.Errorf("format.Export: %w", err)
		}
		return blob.Data, blob.FileName, nil
	}

	formatter, err := format.FromName(name)
	if err != nil {
		return nil, "", fmt.Errorf("format.FromName: %w", err)
	}

	data, err = table.Format(formatter, 0, -1)
	if err != nil {
		return nil, "", fmt.Errorf("table.Format: %w", err)
	}
	return data, baseName + extension(name), nil
}

func extension(name string) string {
	switch name {
	case "json":
		return ".json"
	case "html":
		return ".html"
	case "markdown", "md":
		return ".md"
	default:
		return ".txt"
	}
}

// write sends data to stdout if output is empty. An existing directory
// as output receives a file with the suggested name.
func write(stdout io.Writer, output string, data []byte, fileName string) (string, error) {
	if output == "" {
		_, err := stdout.Write(data)
		return "", err
	}

	if info, err := os.Stat(output); err == nil && info.IsDir() {
		output = filepath.Join(output, fileName)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile: %w", err)
	}
	return output, nil
}
