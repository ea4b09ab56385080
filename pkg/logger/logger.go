package logger

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	ServiceName string
	Environment string
	Level       string
	LokiURL     string
}

// New builds the process logger. Records are always written to stdout; when a
// Loki URL is configured they are pushed there as well.
func New(config Config) (*otelzap.Logger, error) {
	level := zapcore.InfoLevel

	if config.Level != "" {
		if err := level.Set(config.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
	}

	zapConfig := zap.NewProductionConfig()

	if config.Environment == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	options := []zap.Option{
		zap.Fields(zap.String("service", config.ServiceName)),
	}

	if config.LokiURL != "" {
		loki := NewLokiWriter(config.ServiceName, config.LokiURL)
		encoder := zapcore.NewJSONEncoder(zapConfig.EncoderConfig)

		options = append(options, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, zapcore.NewCore(encoder, zapcore.AddSync(loki), zapConfig.Level))
		}))
	}

	zapLogger, err := zapConfig.Build(options...)

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return otelzap.New(zapLogger, otelzap.WithMinLevel(level)), nil
}

// Install makes logger the global one used by otelzap.Ctx and zap.L.
func Install(logger *otelzap.Logger) func() {
	undoOtel := otelzap.ReplaceGlobals(logger)
	undoZap := zap.ReplaceGlobals(logger.Logger)

	return func() {
		undoZap()
		undoOtel()
	}
}

func NewNop() *otelzap.Logger {
	return otelzap.New(zap.NewNop())
}
