// Package logger holds the process-wide zap loggers of the parcels tool.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// CoreLogger logs command execution.
	CoreLogger *zap.SugaredLogger
	// LoadLogger logs seed file ingestion.
	LoadLogger *zap.SugaredLogger

	coreLogLevelEnabler zapcore.LevelEnabler
	levels              []zap.AtomicLevel
)

func init() {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	log, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err == nil {
		sugar := log.Sugar()
		SetCoreLogger(sugar)
		SetLoadLogger(sugar)
	}
	levels = append(levels, config.Level)
}

// SetLevel updates all log levels.
func SetLevel(level zapcore.Level) {
	for _, l := range levels {
		l.SetLevel(level)
	}
}

func SetCoreLogger(log *zap.SugaredLogger) {
	CoreLogger = log
	coreLogLevelEnabler = log.Desugar().Core()
}

func SetLoadLogger(log *zap.SugaredLogger) {
	LoadLogger = log
}

// Sync flushes every logger. Errors from syncing a console are ignored.
func Sync() {
	_ = CoreLogger.Sync()
	_ = LoadLogger.Sync()
}

type SugaredLoggerOnWith struct {
	log      *zap.SugaredLogger
	withArgs []any
}

func With(args ...any) *SugaredLoggerOnWith {
	return &SugaredLoggerOnWith{log: CoreLogger, withArgs: args}
}

// WithFile returns a load logger carrying the seed file path.
func WithFile(path string) *SugaredLoggerOnWith {
	return &SugaredLoggerOnWith{log: LoadLogger, withArgs: []any{"file", path}}
}

func WithCountry(country string) *SugaredLoggerOnWith {
	return With("country", country)
}

func (log *SugaredLoggerOnWith) With(args ...any) *SugaredLoggerOnWith {
	args = append(args, log.withArgs...)
	return &SugaredLoggerOnWith{log: log.log, withArgs: args}
}

func (log *SugaredLoggerOnWith) Infof(template string, args ...any) {
	log.log.Infow(fmt.Sprintf(template, args...), log.withArgs...)
}

func (log *SugaredLoggerOnWith) Warnf(template string, args ...any) {
	log.log.Warnw(fmt.Sprintf(template, args...), log.withArgs...)
}

func (log *SugaredLoggerOnWith) Errorf(template string, args ...any) {
	log.log.Errorw(fmt.Sprintf(template, args...), log.withArgs...)
}

func (log *SugaredLoggerOnWith) Debugf(template string, args ...any) {
	if !coreLogLevelEnabler.Enabled(zap.DebugLevel) {
		return
	}
	log.log.Debugw(fmt.Sprintf(template, args...), log.withArgs...)
}

func Infof(template string, args ...any) {
	CoreLogger.Infof(template, args...)
}

func Warnf(template string, args ...any) {
	CoreLogger.Warnf(template, args...)
}

func Errorf(template string, args ...any) {
	CoreLogger.Errorf(template, args...)
}

func Debugf(template string, args ...any) {
	CoreLogger.Debugf(template, args...)
}
