package keystore

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

// badgerPrefix 键前缀
var badgerPrefix = []byte("/keyinfo/")

// BadgerKeystore 基于 BadgerDB 的密钥存储
type BadgerKeystore struct {
	db     *badger.DB
	sealer sealer
	closed atomic.Bool
}

var _ Keystore = (*BadgerKeystore)(nil)

// BadgerOptions BadgerKeystore 选项
type BadgerOptions struct {
	// Path 数据目录（InMemory 为 true 时忽略）
	Path string

	// InMemory 仅内存模式
	InMemory bool

	// SyncWrites 每次写入都同步到磁盘
	SyncWrites bool

	// Password 加密密码（为空则不加密）
	Password []byte
}

// NewBadgerKeystore 打开 BadgerDB 密钥存储
func NewBadgerKeystore(opts BadgerOptions) (*BadgerKeystore, error) {
	if !opts.InMemory && opts.Path == "" {
		return nil, errors.New("badger keystore: path required")
	}

	bopts := badger.DefaultOptions(opts.Path).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(&badgerLogger{log.With("backend", "badger")})
	if opts.InMemory {
		bopts = bopts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &BadgerKeystore{
		db:     db,
		sealer: sealer{password: opts.Password},
	}, nil
}

// Has 检查是否存在指定 ID 的密钥
func (ks *BadgerKeystore) Has(id string) (bool, error) {
	if err := ks.check(id); err != nil {
		return false, err
	}
	err := ks.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(dbKey(id))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Put 存储密钥
func (ks *BadgerKeystore) Put(id string, info *keyinfo.PrivateKeyInfo) error {
	if err := ks.check(id); err != nil {
		return err
	}
	data, err := ks.sealer.seal(info)
	if err != nil {
		return err
	}

	err = ks.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(dbKey(id))
		if err == nil {
			return ErrKeyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(dbKey(id), data)
	})
	if err != nil {
		return err
	}

	log.Debug("key stored", "backend", "badger", "id", id)
	return nil
}

// Get 获取密钥
func (ks *BadgerKeystore) Get(id string) (*keyinfo.PrivateKeyInfo, error) {
	if err := ks.check(id); err != nil {
		return nil, err
	}

	var data []byte
	err := ks.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return ks.sealer.open(data)
}

// Delete 删除密钥
func (ks *BadgerKeystore) Delete(id string) error {
	if err := ks.check(id); err != nil {
		return err
	}
	err := ks.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(dbKey(id)); err != nil {
			return err
		}
		return txn.Delete(dbKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrKeyNotFound
	}
	return err
}

// List 列出所有密钥 ID（按字典序）
func (ks *BadgerKeystore) List() ([]string, error) {
	if ks.closed.Load() {
		return nil, ErrClosed
	}

	var ids []string
	err := ks.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = badgerPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(badgerPrefix); it.ValidForPrefix(badgerPrefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(badgerPrefix):]))
		}
		return nil
	})
	return ids, err
}

// Close 关闭数据库，重复调用无副作用
func (ks *BadgerKeystore) Close() error {
	if !ks.closed.CompareAndSwap(false, true) {
		return nil
	}
	return ks.db.Close()
}

func (ks *BadgerKeystore) check(id string) error {
	if ks.closed.Load() {
		return ErrClosed
	}
	return ValidateID(id)
}

func dbKey(id string) []byte {
	return append(append([]byte{}, badgerPrefix...), id...)
}

// badgerLogger 将 badger.Logger 适配到 slog
type badgerLogger struct {
	log *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
