package utils

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logOnce sync.Once
	appLog  *zap.Logger
)

// Log returns the shared application logger, building it on first use.
func Log() *zap.Logger {
	logOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		appLog = l
	})
	return appLog
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	Log().Info(message, eventFields(requestID, module, action)...)
}

// LogWarn is LogEvent at warn level, for recoverable oddities.
func LogWarn(requestID, module, action, message string) {
	Log().Warn(message, eventFields(requestID, module, action)...)
}

func eventFields(requestID, module, action string) []zap.Field {
	return []zap.Field{
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	}
}
