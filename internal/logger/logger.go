// Package logger provides file-based structured logging. The trainer
// owns the terminal while it runs, so nothing may ever log to stdout or
// stderr; everything goes to a log file under the user config dir.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	logFile *os.File
	Log     = slog.New(slog.NewJSONHandler(io.Discard, nil))
)

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rustlings"), nil
}

// Init opens the log file. With debug all levels are written, otherwise
// only warnings and errors.
func Init(debug bool) error {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	logFile = f

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	Log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

func Debug(msg string, args ...any) { Log.Debug(msg, args...) }
func Info(msg string, args ...any)  { Log.Info(msg, args...) }
func Warn(msg string, args ...any)  { Log.Warn(msg, args...) }
func Error(msg string, args ...any) { Log.Error(msg, args...) }

func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
