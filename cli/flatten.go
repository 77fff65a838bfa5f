package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kndndrj/gqlbee/config"
	"github.com/kndndrj/gqlbee/core"
)

func newFlattenCommand(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "flatten a saved GraphQL response",
		Args:  cobra.NoArgs,
	}
	settings := bindConfig(cmd, config.Flatten(), cfgFile)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := settings()
		if err != nil {
			return err
		}

		logger := newLogger(v)
		defer logger.Close()

		vf, err := newValueFormatter(v)
		if err != nil {
			return err
		}

		input := v.GetString(config.KeyInput)
		raw, err := readInput(cmd.InOrStdin(), input)
		if err != nil {
			return err
		}
		logger.Debugf("read %d bytes from %q", len(raw), input)

		table, err := core.Flatten(raw, vf)
		if err != nil {
			return err
		}
		logger.Infof("flattened %d rows into %d columns", table.Len(), len(table.Header()))

		data, fileName, err := render(table, v.GetString(config.KeyFormat), baseName(input))
		if err != nil {
			return err
		}

		path, err := write(cmd.OutOrStdout(), v.GetString(config.KeyOutput), data, fileName)
		if err != nil {
			return err
		}
		if path != "" {
			logger.Infof("written to %q", path)
		}
		return nil
	}

	return cmd
}

func readInput(stdin io.Reader, input string) ([]byte, error) {
	if input == "" || input == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll: %w", err)
		}
		return b, nil
	}

	b, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return b, nil
}

// baseName suggests an export name from the input file
func baseName(input string) string {
	if input == "" || input == "-" {
		return ""
	}
	name := filepath.Base(input)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
