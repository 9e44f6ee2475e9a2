package zctx

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	z2fLogger     *logrus.Logger
	getLoggerOnce sync.Once
)

// GetLogger returns the process-wide logger. It writes to stderr so that
// stdout stays reserved for the converted history, and stays at Warn unless
// the user passes --verbose.
func GetLogger() *logrus.Logger {
	getLoggerOnce.Do(func() {
		logFormatter := new(logrus.TextFormatter)
		logFormatter.TimestampFormat = time.RFC3339
		logFormatter.FullTimestamp = true

		z2fLogger = logrus.New()
		z2fLogger.SetFormatter(logFormatter)
		z2fLogger.SetLevel(logrus.WarnLevel)
		z2fLogger.SetOutput(os.Stderr)
	})
	return z2fLogger
}
