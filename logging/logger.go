// Package logging builds the harness's zap logger: human-readable output on the console and,
// optionally, JSON lines in a rotated log file.
package logging

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/coinos/wallet-ui-tests/config"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// New returns a logger that writes to console at the configured level, and also to cfg.File
// if that is set. The returned function flushes buffered output and should be deferred.
func New(cfg config.LoggerConfig, console zapcore.WriteSyncer) (*zap.Logger, func(), error) {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid logger.level %q: %w", cfg.Level, err)
		}
	}

	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder(), console, level)}

	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
	flush := func() {
		_ = logger.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return logger, flush, nil
}

// NewConsole is New writing to a locked stderr.
func NewConsole(cfg config.LoggerConfig) (*zap.Logger, func(), error) {
	return New(cfg, zapcore.Lock(os.Stderr))
}

func jsonEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

func consoleEncoder() zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	ec.EncodeLevel = levelEncoder
	ec.EncodeCaller = nil
	ec.CallerKey = zapcore.OmitKey
	ec.StacktraceKey = zapcore.OmitKey
	return zapcore.NewConsoleEncoder(ec)
}

var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel: color.New(color.FgHiBlack),
	zapcore.InfoLevel:  color.New(color.FgCyan),
	zapcore.WarnLevel:  color.New(color.FgYellow),
	zapcore.ErrorLevel: color.New(color.FgRed),
}

// levelEncoder colorizes the level name. fatih/color disables itself when output is not a
// terminal or NO_COLOR is set.
func levelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	name := level.CapitalString()
	if c, ok := levelColors[level]; ok {
		enc.AppendString(c.Sprint(name))
		return
	}
	if level > zapcore.ErrorLevel {
		enc.AppendString(color.New(color.FgRed, color.Bold).Sprint(name))
		return
	}
	enc.AppendString(name)
}
