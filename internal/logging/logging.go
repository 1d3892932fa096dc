// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select where log lines go and how much is written
type Options struct {
	File    string // empty disables the file sink
	Level   string // zap level name, "info" when empty
	Verbose bool   // forces debug
	Stderr  bool   // also write to stderr; never set while the TUI owns the terminal
}

// New builds a JSON logger for opts. With no sink selected it returns a
// no-op logger.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	var outputs []string
	if opts.File != "" {
		outputs = append(outputs, opts.File)
	}
	if opts.Stderr {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}
	config.OutputPaths = outputs
	config.ErrorOutputPaths = outputs
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Sampling drops repeated lines, which hides crawl retries
	config.Sampling = nil

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
