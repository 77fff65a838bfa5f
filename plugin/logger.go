package plugin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var timeFormat = "2006-01-02 15:04:05.000 -0700"

type Logger struct {
	vim          *nvim.Nvim
	logger       *logrus.Logger
	file         io.WriteCloser
	triedFileSet bool
	mu           sync.Mutex
}

// NewLogger returns a logger for the remote plugin.
// Messages go to a rotated file in neovim cache directory, set up on first use.
// Stdout is the RPC channel and is never written to.
func NewLogger(vim *nvim.Nvim) *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: timeFormat,
	})

	return &Logger{
		vim:    vim,
		logger: logger,
	}
}

// NewFileLogger returns a logger that writes to stderr and,
// if path is not empty, to a rotated log file.
func NewFileLogger(path string, level string) *Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timeFormat,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	l := &Logger{
		logger:       logger,
		triedFileSet: true,
	}

	var writer io.Writer = os.Stderr
	if path != "" {
		l.file = newRotatedFile(path)
		writer = io.MultiWriter(os.Stderr, l.file)
	}
	logger.SetOutput(writer)

	return l
}

func newRotatedFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     10, // days
	}
}

func (l *Logger) setupFile() error {
	var dir string
	err := l.vim.Call("stdpath", &dir, "cache")
	if err != nil {
		return err
	}
	dir = filepath.Join(dir, "gqlbee")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	l.file = newRotatedFile(filepath.Join(dir, "gqlbee.log"))
	l.logger.SetOutput(l.file)
	return nil
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}
}

func (l *Logger) entry(level logrus.Level, message string) {
	l.mu.Lock()
	if l.file == nil && !l.triedFileSet && l.vim != nil {
		err := l.setupFile()
		if err != nil {
			l.logger.SetOutput(os.Stderr)
			l.logger.Errorf("l.setupFile: %s", err)
		}
		l.triedFileSet = true
	}
	l.mu.Unlock()

	l.logger.Log(level, message)
}

// notify shows the message in the editor, the log file keeps a copy regardless
func (l *Logger) notify(level nvim.LogLevel, message string) {
	if l.vim == nil {
		return
	}

	luaLevel := "INFO"
	switch level {
	case nvim.LogWarnLevel:
		luaLevel = "WARN"
	case nvim.LogErrorLevel:
		luaLevel = "ERROR"
	}

	// use lua so the plugins can prettify the message
	err := l.vim.ExecLua(`local msg, lvl, opts = ...; vim.notify(msg, vim.log.levels[lvl], opts)`, nil,
		message, luaLevel, map[string]any{"title": "gqlbee"})
	if err != nil {
		l.logger.Errorf("[lua log failure]: %s", err)
		// fallback to go method
		err = l.vim.Notify(message, level, map[string]any{})
		if err != nil {
			l.logger.Errorf("[log failure]: %s", err)
		}
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.entry(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.entry(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.entry(logrus.WarnLevel, msg)
	l.notify(nvim.LogWarnLevel, msg)
}

func (l *Logger) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.entry(logrus.ErrorLevel, msg)
	l.notify(nvim.LogErrorLevel, msg)
}

// Logrus exposes the underlying logger
func (l *Logger) Logrus() *logrus.Logger {
	return l.logger
}
