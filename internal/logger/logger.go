// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger holds the process-wide structured logger. It starts as a
// no-op so library packages can log before (or without) the CLI calling
// Initialize.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger.
	Logger *zap.SugaredLogger
	// JSONOutput records whether Initialize selected JSON encoding.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize replaces the global logger. Logs go to stderr so that stdout
// stays free for simplified output. verbose lowers the level to debug.
func Initialize(jsonOutput, verbose bool) error {
	return InitializeWriter(os.Stderr, jsonOutput, verbose)
}

// InitializeWriter is Initialize with an explicit destination.
func InitializeWriter(w io.Writer, jsonOutput, verbose bool) error {
	JSONOutput = jsonOutput

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	Logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level)).Sugar()
	return nil
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields.
func Infow(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields.
func Warnw(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields.
func Errorw(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields.
func Debugw(msg string, keysAndValues ...any) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
