package keystore

import "errors"

// 密钥存储相关错误
var (
	// ErrKeyNotFound 密钥未找到
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists 密钥已存在
	ErrKeyExists = errors.New("key already exists")

	// ErrInvalidID 密钥 ID 无效
	ErrInvalidID = errors.New("invalid key id")

	// ErrInvalidPassword 需要密码但未提供
	ErrInvalidPassword = errors.New("invalid password")

	// ErrDecryptionFailed 解密失败
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidRecord 记录格式无效
	ErrInvalidRecord = errors.New("invalid key record")

	// ErrClosed 存储已关闭
	ErrClosed = errors.New("keystore closed")
)
