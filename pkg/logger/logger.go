package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
	sugar *zap.SugaredLogger
}

// NewLogger returns a development logger printing every level. Use New to
// choose the level and the encoding.
func NewLogger() *defaultLogger {
	return New("development", DEBUG)
}

// New builds a zap backed logger. Mode "production" (or "prod") uses the JSON
// encoder, any other value uses the human readable console encoder.
func New(mode string, level int) *defaultLogger {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	// Level gating is done by defaultLogger itself.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		zapLogger = zap.NewNop()
	}

	return &defaultLogger{level: level, sugar: zapLogger.Sugar()}
}

// ParseLevel converts a textual level to its constant. Unknown values map to
// INFO.
func ParseLevel(s string) int {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	case "silence", "none":
		return SILENCE
	default:
		return INFO
	}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	if l.level <= DEBUG {
		l.sugar.Debugf(msg, a...)
	}
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	if l.level <= INFO {
		l.sugar.Infof(msg, a...)
	}
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	if l.level <= WARNING {
		l.sugar.Warnf(msg, a...)
	}
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	if l.level <= ERROR {
		l.sugar.Errorf(msg, a...)
	}
}

func (l *defaultLogger) Sync() {
	_ = l.sugar.Sync()
}
