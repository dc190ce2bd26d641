package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	loggerEncoding   = "console"
	loggerMessageKey = "message"
	loggerOutputPath = "stderr"
)

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
// Entries carry only the message so diagnostics read as plain lines on stderr.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = loggerEncoding
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.Sampling = nil
	config.OutputPaths = []string{loggerOutputPath}
	config.ErrorOutputPaths = []string{loggerOutputPath}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = loggerMessageKey
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}
