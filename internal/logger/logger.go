// Package logger builds the zap loggers used by the command-line
// front ends and handed down to the Telegram client.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a console logger at the given level.
//
// Unknown level strings fall back to info. Output goes to stderr so it
// never interleaves with menu prompts and progress output on stdout.
func New(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		lvl,
	)

	return zap.New(core)
}

// Nop returns a logger that discards everything. Used where a logger is
// required but output is unwanted, e.g. inside the TUI.
func Nop() *zap.Logger {
	return zap.NewNop()
}
