package keystore

import (
	"fmt"

	"github.com/dep2p/go-keyinfo/config"
)

// Open 按配置打开密钥存储
func Open(cfg config.KeystoreConfig) (Keystore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	password, err := cfg.Password()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemKeystoreWithPassword(password), nil
	case config.BackendFS:
		return NewFSKeystore(cfg.FSPath(), password)
	case config.BackendBadger:
		return NewBadgerKeystore(BadgerOptions{
			Path:       cfg.DBPath(),
			SyncWrites: cfg.SyncWrites,
			Password:   password,
		})
	default:
		return nil, fmt.Errorf("keystore: unknown backend %q", cfg.Backend)
	}
}
