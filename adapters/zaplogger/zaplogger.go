// Package zaplogger adapts a zap logger to the client Logger interface.
package zaplogger

import "go.uber.org/zap"

// Logger forwards printf-style client log calls to a zap SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New wraps a zap logger. Pass zap.NewNop() to silence a component.
func New(l *zap.Logger) *Logger {
	return &Logger{sugar: l.Sugar()}
}

func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}
