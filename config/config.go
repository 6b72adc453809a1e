// Package config 提供 keyinfo 的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义，
// 支持从 JSON 加载和保存。
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Keystore.Backend = config.BackendBadger
//
//	cfg, err := config.FromJSON(data)
//	if err := cfg.Validate(); err != nil { ... }
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 是 keyinfo 的完整配置结构
type Config struct {
	// Keystore 密钥存储配置
	Keystore KeystoreConfig `json:"keystore"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Keystore: DefaultKeystoreConfig(),
		Log:      DefaultLogConfig(),
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if err := c.Keystore.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// FromJSON 从 JSON 加载配置
//
// 未出现的字段保留默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return FromJSON(data)
}

// ToJSON 序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
