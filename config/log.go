package config

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-keyinfo/internal/util/logger"
)

// LogConfig 日志配置
//
// 为空的字段不覆盖 KEYINFO_LOG_* 环境变量。
type LogConfig struct {
	// Level 日志级别，格式同 KEYINFO_LOG_LEVEL
	// 示例: "keystore=debug,info"
	Level string `json:"level,omitempty"`

	// Format 输出格式：text 或 json
	Format string `json:"format,omitempty"`
}

// DefaultLogConfig 返回默认的日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{}
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	for _, part := range strings.Split(c.Level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, lvl, ok := strings.Cut(part, "="); ok {
			part = strings.TrimSpace(lvl)
		}
		if _, ok := logger.ParseLevel(part); !ok {
			return fmt.Errorf("log: unknown level %q", part)
		}
	}

	switch strings.ToLower(c.Format) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}
}

// Apply 将配置应用到日志系统
func (c *LogConfig) Apply() {
	logger.Configure(c.Level, c.Format)
}
