package logger

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronLogger adapts the global zap logger to cron's logger interface
type CronLogger struct {
	logger *zap.Logger
}

// NewCronLogger creates a cron logger backed by the global logger
func NewCronLogger() cron.Logger {
	return &CronLogger{logger: log.With(zap.String("component", "cron"))}
}

// Info logs routine scheduler messages at debug level
func (c *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Debug(msg, keyvalsToFields(keysAndValues...)...)
}

// Error logs scheduler failures, including recovered job panics
func (c *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := append(keyvalsToFields(keysAndValues...), zap.Error(err))
	c.logger.Error(msg, fields...)
}

// keyvalsToFields converts key1, val1, key2, val2 pairs to zap fields
func keyvalsToFields(keyvals ...interface{}) []zap.Field {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}

	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	return fields
}
