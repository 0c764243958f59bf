package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geo-directory/internal/config"
)

// ServiceName попадает в каждое сообщение json-лога как поле "service"
const ServiceName = "geo-directory"

// New собирает zap.Logger по LOG_LEVEL и LOG_FORMAT.
// Неизвестный уровень понижается до info.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	if cfg.Format == "console" {
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zc.Build()
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.InitialFields = map[string]interface{}{"service": ServiceName}
	// без сэмплинга: access-лог пишется целиком
	zc.Sampling = nil
	return zc.Build()
}
