package common

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the process-wide logger. It is a no-op logger until
// InitLogger or SetLogger is called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the process-wide logger. A nil logger restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// InitLogger builds the process-wide logger: JSON at info level, or a
// colored console encoder at debug level when debug is set.
func InitLogger(debug bool) (*zap.Logger, error) {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}

	l, err := config.Build()
	if err != nil {
		return nil, err
	}
	SetLogger(l)
	return l, nil
}
