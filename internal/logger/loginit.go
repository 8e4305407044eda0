package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CoreLogFileName = "core.log"
	LoadLogFileName = "load.log"
)

const encodeTimeFormat = "2006-01-02 15:04:05.000"

// LogRotateConfig bounds the size and number of rotated log files. Sizes
// are in megabytes and ages in days.
type LogRotateConfig struct {
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

type logInitMeta struct {
	fileName             string
	setSugaredLoggerFunc func(*zap.SugaredLogger)
}

// InitParcels installs the loggers of the parcels command. A console logger
// writes to stderr; otherwise JSON logs go to rotated files under dir.
func InitParcels(verbose, console bool, dir string, rotate LogRotateConfig) error {
	if console {
		return createConsoleLogger(verbose)
	}

	var meta = []logInitMeta{
		{
			fileName:             CoreLogFileName,
			setSugaredLoggerFunc: SetCoreLogger,
		},
		{
			fileName:             LoadLogFileName,
			setSugaredLoggerFunc: SetLoadLogger,
		},
	}

	return createFileLogger(verbose, meta, dir, rotate)
}

func levelFor(verbose bool) zap.AtomicLevel {
	if verbose {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.WarnLevel)
}

func createConsoleLogger(verbose bool) error {
	levels = nil
	config := zap.NewDevelopmentConfig()
	config.Level = levelFor(verbose)
	log, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	sugar := log.Sugar()
	SetCoreLogger(sugar)
	SetLoadLogger(sugar)
	levels = append(levels, config.Level)
	return nil
}

func createFileLogger(verbose bool, meta []logInitMeta, logDir string, rotate LogRotateConfig) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	levels = nil
	for _, m := range meta {
		level := levelFor(verbose)
		log := CreateLogger(filepath.Join(logDir, m.fileName), level, rotate)
		m.setSugaredLoggerFunc(log.Sugar())
		levels = append(levels, level)
	}
	return nil
}

// CreateLogger returns a JSON logger writing to filePath through lumberjack.
func CreateLogger(filePath string, level zap.AtomicLevel, rotate LogRotateConfig) *zap.Logger {
	rotateConfig := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotate.MaxSize,
		MaxAge:     rotate.MaxAge,
		MaxBackups: rotate.MaxBackups,
		LocalTime:  true,
	}
	syncer := zapcore.AddSync(rotateConfig)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(encodeTimeFormat)

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		syncer,
		level,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel), zap.AddCallerSkip(1))
}
