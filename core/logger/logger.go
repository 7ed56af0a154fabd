package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used across the application.
// It wraps zap so modules never depend on a concrete logging library.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	With(fields ...Field) Logger
	GetZapLogger() *zap.Logger
}

// Field is a structured log field
type Field = zap.Field

// Config holds logger configuration
type Config struct {
	Environment string // "production" or anything else for development
	LogPath     string // directory for log files
	Level       string // debug, info, warn, error
}

type zapLogger struct {
	logger *zap.Logger
}

// Field constructors re-exported so callers only import this package
func String(key, value string) Field              { return zap.String(key, value) }
func Int(key string, value int) Field             { return zap.Int(key, value) }
func Int64(key string, value int64) Field         { return zap.Int64(key, value) }
func Uint(key string, value uint) Field           { return zap.Uint(key, value) }
func Float64(key string, value float64) Field     { return zap.Float64(key, value) }
func Bool(key string, value bool) Field           { return zap.Bool(key, value) }
func Duration(key string, d time.Duration) Field  { return zap.Duration(key, d) }
func Any(key string, value interface{}) Field     { return zap.Any(key, value) }
func Strings(key string, values []string) Field   { return zap.Strings(key, values) }
func Time(key string, value time.Time) Field      { return zap.Time(key, value) }

// NewLogger creates a zap-backed logger writing to console and a log file
func NewLogger(config Config) (Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(config.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if config.Environment == "production" {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if config.LogPath != "" {
		if err := os.MkdirAll(config.LogPath, 0o755); err == nil {
			logFile, err := os.OpenFile(
				filepath.Join(config.LogPath, "app.log"),
				os.O_APPEND|os.O_CREATE|os.O_WRONLY,
				0o644,
			)
			if err == nil {
				fileEncoderConfig := zap.NewProductionEncoderConfig()
				fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
				fileCore := zapcore.NewCore(
					zapcore.NewJSONEncoder(fileEncoderConfig),
					zapcore.AddSync(logFile),
					level,
				)
				cores = append(cores, fileCore)
			}
		}
	}

	core := zapcore.NewTee(cores...)
	return &zapLogger{logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() Logger {
	return &zapLogger{logger: zap.NewNop()}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...Field) { l.logger.Fatal(msg, fields...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

func (l *zapLogger) GetZapLogger() *zap.Logger { return l.logger }
