// Package logging builds the zap loggers used by the toolkit and the CLI.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures rotated file output.
type FileOptions struct {
	// Base name for log file.
	Filename string `yaml:"filename"`
	// Size in megabytes.
	MaxSize int `yaml:"maxSize"`
	// Number of rotated log files.
	MaxBackups int `yaml:"maxBackups"`
	// If true rotated log files will be gzipped.
	Compress bool `yaml:"compress"`
}

// Options configures a logger.
type Options struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
	// Development switches to the human readable console encoder.
	Development bool `yaml:"development"`
	// File, when Filename is set, sends output to a rotated file instead of stderr.
	File FileOptions `yaml:"file"`
}

// SyncerWithRotation returns a zapcore.WriteSyncer writing to a rotated file.
func SyncerWithRotation(opts FileOptions) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
	})
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, err
		}
	}

	var encoderConfig zapcore.EncoderConfig
	var encoder zapcore.Encoder
	if opts.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if opts.File.Filename != "" {
		sink = SyncerWithRotation(opts.File)
	}

	return zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller()), nil
}
