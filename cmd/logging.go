package cmd

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// newLogger returns a stderr logger honouring the configured level.
func newLogger(prefix, level string) *log.Logger {
	return log.New(levelWriter(os.Stderr, level), prefix, log.LstdFlags)
}

// levelWriter wraps w for the configured level.
// warn and error levels only let failure lines through.
func levelWriter(w io.Writer, level string) io.Writer {
	switch strings.ToLower(level) {
	case "warn", "warning", "error":
		return &errorFilterWriter{w}
	}
	return w
}

// isDebug reports whether debug logging is enabled.
func isDebug(level string) bool {
	return strings.EqualFold(level, "debug")
}

// setupFileLogger opens the log file used while the TUI owns the terminal.
// A nil file means the caller should fall back to stderr.
func setupFileLogger(path string) *os.File {
	path = resolvePathRelativeToBase(getWorkingDir(), path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	return f
}

// errorFilterWriter only writes error messages to the underlying writer
type errorFilterWriter struct {
	writer io.Writer
}

func (w *errorFilterWriter) Write(p []byte) (n int, err error) {
	lc := strings.ToLower(string(p))
	if strings.Contains(lc, "error") ||
		strings.Contains(lc, "failed") ||
		strings.Contains(lc, "panic") {
		return w.writer.Write(p)
	}
	return len(p), nil
}

// getWorkingDir returns the current working directory.
// Falls back to the executable directory if os.Getwd fails.
func getWorkingDir() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolvePathRelativeToBase resolves a possibly relative path against a base directory.
// Absolute paths are returned unchanged.
func resolvePathRelativeToBase(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	p = strings.TrimPrefix(p, "./")
	return filepath.Join(base, p)
}
