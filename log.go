package ecs

import "github.com/TheBitDrifter/bark"

// LogLevel filters which lifecycle diagnostics the package-level logger
// emits. Debug, Info and Warn messages (a full component pool logs at
// Warn) are dropped when the configured level is above them; Error
// messages are logged regardless of the configured level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelSilent
)

var logger = bark.For("ecs")

func logDebug(msg string, kv ...any) {
	if Config.LogLevel > LogLevelDebug {
		return
	}
	logger.Debug(msg, kv...)
}

func logInfo(msg string, kv ...any) {
	if Config.LogLevel > LogLevelInfo {
		return
	}
	logger.Info(msg, kv...)
}

func logWarn(msg string, kv ...any) {
	if Config.LogLevel > LogLevelWarn {
		return
	}
	logger.Warn(msg, kv...)
}

func logError(msg string, kv ...any) {
	logger.Error(msg, kv...)
}
