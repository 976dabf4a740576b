// Package logging builds the process logger.
package logging

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logrus logger at the given level. When file is set, output
// goes to a rotating log file instead of stderr.
func New(level, file string) (*log.Logger, error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(lvl)

	if file == "" {
		logger.SetOutput(os.Stderr)
		return logger, nil
	}
	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetOutput(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
	})
	return logger, nil
}
