// Package odlog is the process-wide structured logger for gopherseo-od. It
// wraps a single package-level *logrus.Logger, the structured-logging idiom
// the wider open-directory crawler corpus (benji-bou-gospider,
// dp2pwn-gospider_plus) uses instead of bare fmt/log calls.
package odlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Configure sets the logger's level from the CLI's --verbose flag. Verbose
// runs trace fetch URLs, detected flavor, link counts, and retry decisions;
// non-verbose runs log only per-seed start/end and fatal errors.
func Configure(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.TraceLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// Tracef logs a fine-grained traversal detail, visible only in verbose runs.
func Tracef(format string, args ...interface{}) {
	logger.Tracef(format, args...)
}

// Infof logs a per-seed lifecycle event.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Errorf logs a fatal or per-item error.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// WithField starts a structured log entry, for call sites that want to
// attach a seed/url/flavor field rather than interpolate it into the format
// string.
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}
