package bridge

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Environment variables read by ConfigureLogging.
const (
	EnvLogLevel  = "VTRACER_LOG_LEVEL"
	EnvLogFormat = "VTRACER_LOG_FORMAT"
)

// defaultLogLevel keeps the library quiet inside host processes.
const defaultLogLevel = logrus.WarnLevel

// LoggerHelper provides standardized logging functionality for the bridge package
type LoggerHelper struct {
	fields logrus.Fields
}

// NewLogger creates a new logger helper with standardized fields
func NewLogger(function string) *LoggerHelper {
	return &LoggerHelper{
		fields: logrus.Fields{
			"function": function,
			"package":  "bridge",
		},
	}
}

// WithField adds a custom field to the logger
func (l *LoggerHelper) WithField(key string, value interface{}) *LoggerHelper {
	l.fields[key] = value
	return l
}

// WithFields adds multiple custom fields to the logger
func (l *LoggerHelper) WithFields(fields logrus.Fields) *LoggerHelper {
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

// WithError adds error information to the logger
func (l *LoggerHelper) WithError(err error, errorType, operation string) *LoggerHelper {
	l.fields["error"] = err.Error()
	l.fields["error_type"] = errorType
	l.fields["operation"] = operation
	return l
}

// Entry logs function entry
func (l *LoggerHelper) Entry(message string) {
	logrus.WithFields(l.fields).Debug(fmt.Sprintf("Function entry: %s", message))
}

// Debug logs a debug message
func (l *LoggerHelper) Debug(message string) {
	logrus.WithFields(l.fields).Debug(message)
}

// Warn logs a warning message
func (l *LoggerHelper) Warn(message string) {
	logrus.WithFields(l.fields).Warn(message)
}

// Error logs an error message
func (l *LoggerHelper) Error(message string) {
	logrus.WithFields(l.fields).Error(message)
}

// ConfigureLogging sets the level and format of logger from the environment.
// getenv is usually os.Getenv. Unknown levels fall back to warn and unknown
// formats to text; the returned error reports what was ignored.
func ConfigureLogging(logger *logrus.Logger, getenv func(string) string) error {
	var problems []string

	level := defaultLogLevel
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		parsed, err := logrus.ParseLevel(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s=%q", EnvLogLevel, v))
		} else {
			level = parsed
		}
	}
	logger.SetLevel(level)

	switch v := strings.ToLower(strings.TrimSpace(getenv(EnvLogFormat))); v {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		problems = append(problems, fmt.Sprintf("%s=%q", EnvLogFormat, v))
	}

	if len(problems) > 0 {
		return fmt.Errorf("ignoring invalid logging settings: %s", strings.Join(problems, ", "))
	}
	return nil
}
