package plugin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/gqlbee/plugin"
)

func TestFileLogger(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "gqlbee.log")

	logger := plugin.NewFileLogger(path, "info")
	logger.Debugf("hidden %d", 1)
	logger.Infof("shown %d", 2)
	logger.Errorf("failure: %s", "boom")
	logger.Close()

	b, err := os.ReadFile(path)
	r.NoError(err)

	text := string(b)
	r.NotContains(text, "hidden 1")
	r.Contains(text, "shown 2")
	r.Contains(text, "failure: boom")
	r.Contains(text, "level=error")
}

func TestFileLogger_InvalidLevel(t *testing.T) {
	logger := plugin.NewFileLogger("", "loud")
	defer logger.Close()

	require.Equal(t, "info", logger.Logrus().GetLevel().String())
}
