package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vtracer/bridge"
)

func init() {
	initLibrary(logrus.StandardLogger(), os.Getenv)
}

// initLibrary configures logging from the environment and reports a config
// struct layout that does not match the compiler's.
func initLibrary(logger *logrus.Logger, getenv func(string) string) {
	if err := bridge.ConfigureLogging(logger, getenv); err != nil {
		logger.WithFields(logrus.Fields{
			"function": "init",
			"error":    err.Error(),
		}).Warn("Invalid logging environment")
	}

	if mismatches := configLayoutMismatches(); len(mismatches) > 0 {
		logger.WithFields(logrus.Fields{
			"function": "init",
			"fields":   strings.Join(mismatches, "; "),
		}).Error("VtracerConfig layout differs from the Go mirror")
	}
}
