// Package logging configures the process-wide phuslu logger.
package logging

import (
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Setup installs the default logger. format is "console" or "json".
func Setup(level, format string) {
	logger := log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "2006-01-02 15:04:05",
	}
	if strings.EqualFold(format, "json") {
		logger.Writer = &log.IOWriter{Writer: os.Stderr}
	} else {
		logger.Writer = &log.ConsoleWriter{
			Writer:         os.Stderr,
			ColorOutput:    log.IsTerminal(os.Stderr.Fd()),
			EndWithMessage: true,
		}
	}
	log.DefaultLogger = logger
}
