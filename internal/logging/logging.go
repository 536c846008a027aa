// Package logging builds the console logger shared by every command.
package logging

import (
	"strings"

	"github.com/BrunoTulio/logr"
	"github.com/BrunoTulio/logr/adapters/zap.v1"
)

const DefaultLevel = "INFO"

// New returns a text console logger at level (DEBUG, INFO, WARN, ERROR).
// Unknown levels fall back to INFO.
func New(level string) logr.Logger {
	return zap.New(
		zap.WithConsole(true),
		zap.WithConsoleLevel(normalize(level)),
		zap.WithConsoleFormatter("TEXT"),
		zap.WithEnableCaller(false),
	)
}

func normalize(level string) string {
	switch l := strings.ToUpper(strings.TrimSpace(level)); l {
	case "DEBUG", "INFO", "WARN", "ERROR":
		return l
	case "WARNING":
		return "WARN"
	default:
		return DefaultLevel
	}
}
