package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewAuditLogger returns a json zap logger writing to filename, rotated like
// the main log, or to stderr when filename is empty.
func NewAuditLogger(filename string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer
	if filename == "" {
		sink = zapcore.Lock(os.Stderr)
	} else {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    1024, // 1GB
			MaxAge:     7,
			MaxBackups: 30,
			LocalTime:  true,
		})
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, zap.InfoLevel)
	return zap.New(core).Named("audit")
}
