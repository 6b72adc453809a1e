package keyinfo

import "errors"

// 服务错误
var (
	// ErrNoKeystore 服务未配置密钥存储
	ErrNoKeystore = errors.New("keyinfo: no keystore configured")
)
