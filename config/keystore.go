package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyPassword PasswordEnv 指向的环境变量未设置或为空
var ErrEmptyPassword = errors.New("keystore: password environment variable is empty")

// 密钥存储后端
const (
	BackendMemory = "memory"
	BackendFS     = "fs"
	BackendBadger = "badger"
)

// KeystoreConfig 密钥存储配置
//
// 目录结构：
//
//	${DataDir}/
//	├── keys/          # fs 后端
//	└── keyinfo.db/    # badger 后端
type KeystoreConfig struct {
	// Backend 存储后端：memory、fs、badger
	// 默认值: "fs"
	Backend string `json:"backend"`

	// DataDir 数据目录
	// 默认值: "./data"
	DataDir string `json:"data_dir"`

	// PasswordEnv 存放加密密码的环境变量名，为空则不加密
	PasswordEnv string `json:"password_env,omitempty"`

	// SyncWrites badger 后端是否同步写入
	SyncWrites bool `json:"sync_writes"`
}

// DefaultKeystoreConfig 返回默认的密钥存储配置
func DefaultKeystoreConfig() KeystoreConfig {
	return KeystoreConfig{
		Backend: BackendFS,
		DataDir: "./data",
	}
}

// Validate 验证密钥存储配置
func (c *KeystoreConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendFS, BackendBadger:
		if c.DataDir == "" {
			return fmt.Errorf("keystore: data_dir cannot be empty for %s backend", c.Backend)
		}
		return nil
	default:
		return fmt.Errorf("keystore: unknown backend %q", c.Backend)
	}
}

// Password 从环境变量读取加密密码
//
// PasswordEnv 为空时返回 nil（不加密）；指定的环境变量未设置或为空时
// 返回 ErrEmptyPassword，避免静默地以明文存储。
func (c *KeystoreConfig) Password() ([]byte, error) {
	if c.PasswordEnv == "" {
		return nil, nil
	}
	pw := os.Getenv(c.PasswordEnv)
	if pw == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPassword, c.PasswordEnv)
	}
	return []byte(pw), nil
}

// FSPath 返回 fs 后端目录
func (c *KeystoreConfig) FSPath() string {
	return filepath.Join(c.DataDir, "keys")
}

// DBPath 返回 badger 数据库路径
func (c *KeystoreConfig) DBPath() string {
	return filepath.Join(c.DataDir, "keyinfo.db")
}
