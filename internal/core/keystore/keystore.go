package keystore

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dep2p/go-keyinfo/internal/util/logger"
	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

var log = logger.Logger("keystore")

// Keystore 私钥容器存储接口
type Keystore interface {
	// Has 检查是否存在指定 ID 的密钥
	Has(id string) (bool, error)

	// Put 存储密钥，ID 已存在时返回 ErrKeyExists
	Put(id string, info *keyinfo.PrivateKeyInfo) error

	// Get 获取密钥
	Get(id string) (*keyinfo.PrivateKeyInfo, error)

	// Delete 删除密钥
	Delete(id string) error

	// List 列出所有密钥 ID
	List() ([]string, error)

	// Close 释放底层资源
	Close() error
}

// NewID 生成随机密钥 ID
func NewID() string {
	return uuid.NewString()
}

// ValidateID 检查密钥 ID
//
// ID 只能包含字母、数字、'-'、'_'、'.'，且不能以 '.' 开头。
func ValidateID(id string) error {
	if id == "" || len(id) > 128 {
		return fmt.Errorf("%w: length %d", ErrInvalidID, len(id))
	}
	if id[0] == '.' {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return nil
}
