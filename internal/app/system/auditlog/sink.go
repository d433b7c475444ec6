package auditlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink is a size-rotated JSON file that receives audit events in
// addition to the main log.
type FileSink struct {
	w    *lumberjack.Logger
	core zapcore.Core
}

// OpenFileSink returns a sink writing to path, or nil when path is empty.
func OpenFileSink(path string) *FileSink {
	if path == "" {
		return nil
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return &FileSink{
		w:    w,
		core: zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapcore.InfoLevel),
	}
}

// Wrap returns a logger that writes to both base and the sink.
func (s *FileSink) Wrap(base *zap.Logger) *zap.Logger {
	if s == nil {
		return base
	}
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, s.core)
	}))
}

// Close flushes and closes the file.
func (s *FileSink) Close() error {
	if s == nil {
		return nil
	}
	return s.w.Close()
}
