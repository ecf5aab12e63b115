// Package log provides the process-wide zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

// Init builds the package logger. Debug selects the development config.
func Init(debug bool) error {
	var (
		zl  *zap.Logger
		err error
	)
	if debug {
		zl, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zl, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	sugar = zl.Sugar()
	return nil
}

func logger() *zap.SugaredLogger {
	if sugar == nil {
		// Tests and library callers that never called Init get a no-op logger.
		sugar = zap.NewNop().Sugar()
	}
	return sugar
}

// Sync flushes buffered entries.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

func Debugf(template string, args ...any) { logger().Debugf(template, args...) }
func Infof(template string, args ...any)  { logger().Infof(template, args...) }
func Warnf(template string, args ...any)  { logger().Warnf(template, args...) }
func Errorf(template string, args ...any) { logger().Errorf(template, args...) }
func Fatalf(template string, args ...any) { logger().Fatalf(template, args...) }

// Infow logs a message with structured key/value pairs.
func Infow(msg string, keysAndValues ...any) { logger().Infow(msg, keysAndValues...) }
