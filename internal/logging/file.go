package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp format of log file lines.
const TimeLayout = "[2006-01-02 15:04:05]"

const (
	levelInfo    = "INFO"
	levelSuccess = "SUCCESS"
	levelWarn    = "WARN"
	levelError   = "ERROR"
	levelPhase   = "PHASE"
	levelDebug   = "DEBUG"
)

// sink receives a copy of every console line. Guarded by mu.
var sink *zap.Logger

// fileSink closes the log file opened by OpenLogFile.
type fileSink struct {
	logger *zap.Logger
	file   *os.File
}

func (s *fileSink) Close() error {
	mu.Lock()
	if sink == s.logger {
		sink = nil
	}
	mu.Unlock()

	_ = s.logger.Sync()
	return s.file.Close()
}

// OpenLogFile appends every subsequent log line to path, stamped with the
// wall clock in loc:
//
//	[2025-01-02 14:03:07] INFO    Session 1f3c... starting
//
// The returned Closer detaches and closes the file.
func OpenLogFile(path string, loc *time.Location) (io.Closer, error) {
	if loc == nil {
		loc = time.Local
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:    "time",
		LevelKey:   "level",
		MessageKey: "msg",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.In(loc).Format(TimeLayout))
		},
		EncodeLevel:      levelEncoder,
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)
	logger := zap.New(core)

	mu.Lock()
	sink = logger
	mu.Unlock()

	return &fileSink{logger: logger, file: f}, nil
}

// levelEncoder pads level names so messages line up in the file.
func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(fmt.Sprintf("%-7s", l.CapitalString()))
}

// mirror writes msg to the file sink. The caller holds mu.
func mirror(level, msg string) {
	if sink == nil {
		return
	}
	switch level {
	case levelWarn:
		sink.Warn(msg)
	case levelError:
		sink.Error(msg)
	case levelDebug:
		sink.Debug(msg)
	default:
		sink.Info(msg)
	}
}
