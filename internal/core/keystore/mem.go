package keystore

import (
	"sort"
	"sync"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

// MemKeystore 内存密钥存储（用于测试）
//
// 条目以与持久化后端相同的记录格式保存。
type MemKeystore struct {
	mu     sync.RWMutex
	keys   map[string][]byte
	sealer sealer
	closed bool
}

var _ Keystore = (*MemKeystore)(nil)

// NewMemKeystore 创建内存密钥存储
func NewMemKeystore() *MemKeystore {
	return NewMemKeystoreWithPassword(nil)
}

// NewMemKeystoreWithPassword 创建加密的内存密钥存储
//
// password 为空则不加密。
func NewMemKeystoreWithPassword(password []byte) *MemKeystore {
	return &MemKeystore{
		keys:   make(map[string][]byte),
		sealer: sealer{password: password},
	}
}

// Has 检查是否存在指定 ID 的密钥
func (ks *MemKeystore) Has(id string) (bool, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	if err := ks.check(id); err != nil {
		return false, err
	}
	_, ok := ks.keys[id]
	return ok, nil
}

// Put 存储密钥
func (ks *MemKeystore) Put(id string, info *keyinfo.PrivateKeyInfo) error {
	data, err := ks.sealer.seal(info)
	if err != nil {
		return err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	if err := ks.check(id); err != nil {
		return err
	}
	if _, ok := ks.keys[id]; ok {
		return ErrKeyExists
	}
	ks.keys[id] = data
	return nil
}

// Get 获取密钥
func (ks *MemKeystore) Get(id string) (*keyinfo.PrivateKeyInfo, error) {
	ks.mu.RLock()
	if err := ks.check(id); err != nil {
		ks.mu.RUnlock()
		return nil, err
	}
	data, ok := ks.keys[id]
	ks.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}
	return ks.sealer.open(data)
}

// Delete 删除密钥
func (ks *MemKeystore) Delete(id string) error {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if err := ks.check(id); err != nil {
		return err
	}
	if _, ok := ks.keys[id]; !ok {
		return ErrKeyNotFound
	}
	delete(ks.keys, id)
	return nil
}

// List 列出所有密钥 ID（按字典序）
func (ks *MemKeystore) List() ([]string, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	if ks.closed {
		return nil, ErrClosed
	}
	ids := make([]string, 0, len(ks.keys))
	for id := range ks.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close 关闭存储
func (ks *MemKeystore) Close() error {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.closed = true
	return nil
}

// check 需在持有锁时调用
func (ks *MemKeystore) check(id string) error {
	if ks.closed {
		return ErrClosed
	}
	return ValidateID(id)
}
