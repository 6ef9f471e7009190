package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// Các giá trị hợp lệ của LOG_OUTPUT
const (
	OutputFile   = "file"
	OutputStdout = "stdout"
	OutputBoth   = "both"
)

// LogConfig chứa cấu hình cho hệ thống logging, đọc từ biến môi trường LOG_*
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"`                     // trace, debug, info, warn, error, fatal
	Format string `env:"LOG_FORMAT"`                    // json, text
	Output string `env:"LOG_OUTPUT" envDefault:"both"` // file, stdout, both

	// Xoay vòng file log (lumberjack)
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`  // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"` // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`     // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	LogPath    string `env:"LOG_PATH" envDefault:"./logs"`
	BufferSize int    `env:"LOG_BUFFER_SIZE" envDefault:"1000"` // Số entry chờ ghi trong AsyncHook
}

// DefaultConfig đọc cấu hình từ biến môi trường. Level/Format mặc định theo GO_ENV:
// development dùng debug + text, còn lại info + json
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		cfg = &LogConfig{Output: OutputBoth, MaxSize: 100, MaxBackups: 7, MaxAge: 7, Compress: true, LogPath: "./logs", BufferSize: 1000}
	}

	development := os.Getenv("GO_ENV") == "" || os.Getenv("GO_ENV") == "development"
	if cfg.Level == "" {
		cfg.Level = "info"
		if development {
			cfg.Level = "debug"
		}
	}
	if cfg.Format == "" {
		cfg.Format = "json"
		if development {
			cfg.Format = "text"
		}
	}
	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}

func (c *LogConfig) writesFile() bool {
	return c.Output == OutputFile || c.Output == OutputBoth
}

func (c *LogConfig) writesStdout() bool {
	return c.Output == OutputStdout || c.Output == OutputBoth
}
