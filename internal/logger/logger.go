package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Tên các logger dùng trong service
const (
	NameApp   = "app"
	NameAudit = "audit"
)

const timestampLayout = "2006-01-02 15:04:05.000"

var (
	mu      sync.Mutex
	config  *LogConfig
	loggers = map[string]*logrus.Logger{}
	hooks   []*AsyncHook
)

// Init khởi tạo hệ thống logging. cfg nil thì đọc từ biến môi trường
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.writesFile() {
		if err := os.MkdirAll(cfg.LogPath, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	mu.Lock()
	config = cfg
	mu.Unlock()
	return nil
}

// GetLogger trả về logger theo tên; mỗi tên ghi ra file <tên>.log riêng
func GetLogger(name string) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[name]; ok {
		return l
	}
	if config == nil {
		config = DefaultConfig()
		if config.writesFile() {
			_ = os.MkdirAll(config.LogPath, 0755)
		}
	}

	l := logrus.New()
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(newFormatter(config.Format))
	l.SetReportCaller(true)

	// File I/O đi qua AsyncHook để request đang chờ provider không bị chặn thêm bởi việc ghi log
	if writers := outputWriters(config, name); len(writers) > 0 {
		hook := NewAsyncHookWithWriters(writers, config.BufferSize)
		hooks = append(hooks, hook)
		l.AddHook(hook)
		l.SetOutput(io.Discard)
	}

	loggers[name] = l
	return l
}

func newFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampLayout,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyFunc: "function",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampLayout,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			fn := f.Function[strings.LastIndex(f.Function, ".")+1:]
			return fn, fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

func outputWriters(cfg *LogConfig, name string) []io.Writer {
	var writers []io.Writer
	if cfg.writesFile() {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogPath, name+".log"),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	if cfg.writesStdout() {
		writers = append(writers, os.Stdout)
	}
	return writers
}

// Shutdown flush các entry còn trong buffer; gọi một lần khi tắt server
func Shutdown() {
	mu.Lock()
	pending := hooks
	hooks = nil
	mu.Unlock()

	for _, h := range pending {
		_ = h.Close()
		if dropped := h.Dropped(); dropped > 0 {
			fmt.Fprintf(os.Stderr, "logger: %d entries dropped because the buffer was full\n", dropped)
		}
	}
}

// GetAppLogger trả về logger chính của ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger(NameApp)
}

// GetAuditLogger logger audit: thay đổi trạng thái đơn do operator thực hiện
func GetAuditLogger() *logrus.Logger {
	return GetLogger(NameAudit)
}
