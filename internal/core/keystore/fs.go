package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

const keyFileExt = ".key"

// FSKeystore 基于文件系统的密钥存储
type FSKeystore struct {
	dir    string
	sealer sealer
	closed atomic.Bool
}

var _ Keystore = (*FSKeystore)(nil)

// NewFSKeystore 创建文件系统密钥存储
//
// 参数：
//   - dir: 存储目录，不存在时以 0700 创建
//   - password: 加密密码（为空则不加密）
func NewFSKeystore(dir string, password []byte) (*FSKeystore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	return &FSKeystore{
		dir:    dir,
		sealer: sealer{password: password},
	}, nil
}

// Has 检查是否存在指定 ID 的密钥
func (ks *FSKeystore) Has(id string) (bool, error) {
	if err := ks.check(id); err != nil {
		return false, err
	}
	_, err := os.Stat(ks.keyPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Put 存储密钥
func (ks *FSKeystore) Put(id string, info *keyinfo.PrivateKeyInfo) error {
	if err := ks.check(id); err != nil {
		return err
	}

	data, err := ks.sealer.seal(info)
	if err != nil {
		return err
	}

	// O_EXCL 保证并发 Put 同一 ID 时只有一个成功
	f, err := os.OpenFile(ks.keyPath(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, os.ErrExist) {
		return ErrKeyExists
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(ks.keyPath(id))
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(ks.keyPath(id))
		return err
	}

	log.Debug("key stored", "backend", "fs", "id", id)
	return nil
}

// Get 获取密钥
func (ks *FSKeystore) Get(id string) (*keyinfo.PrivateKeyInfo, error) {
	if err := ks.check(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(ks.keyPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return ks.sealer.open(data)
}

// Delete 删除密钥
func (ks *FSKeystore) Delete(id string) error {
	if err := ks.check(id); err != nil {
		return err
	}
	err := os.Remove(ks.keyPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrKeyNotFound
	}
	return err
}

// List 列出所有密钥 ID
func (ks *FSKeystore) List() ([]string, error) {
	if ks.closed.Load() {
		return nil, ErrClosed
	}
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == keyFileExt {
			ids = append(ids, strings.TrimSuffix(entry.Name(), keyFileExt))
		}
	}
	return ids, nil
}

// Close 关闭存储
func (ks *FSKeystore) Close() error {
	ks.closed.Store(true)
	return nil
}

func (ks *FSKeystore) check(id string) error {
	if ks.closed.Load() {
		return ErrClosed
	}
	return ValidateID(id)
}

func (ks *FSKeystore) keyPath(id string) string {
	return filepath.Join(ks.dir, id+keyFileExt)
}
