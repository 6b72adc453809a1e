package keyinfo

import (
	"crypto"
	"fmt"
	"log/slog"

	"github.com/dep2p/go-keyinfo/internal/core/keystore"
	"github.com/dep2p/go-keyinfo/internal/util/logger"
	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"
	"github.com/dep2p/go-keyinfo/pkg/lib/oid"

	pkcs8 "github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

var log = logger.Logger("keyinfo")

// Service 私钥容器服务
type Service struct {
	factory *pkcs8.Factory
	store   keystore.Keystore
	log     *slog.Logger
}

// NewService 创建服务
//
// store 可以为 nil，此时只能使用 Encode/EncodePEM。
func NewService(factory *pkcs8.Factory, store keystore.Keystore) *Service {
	if factory == nil {
		factory = pkcs8.NewFactory(pkcs8.WithLogger(log))
	}
	return &Service{
		factory: factory,
		store:   store,
		log:     log,
	}
}

// Create 构造容器
func (s *Service) Create(p params.AsymmetricKeyParameters) (*pkcs8.PrivateKeyInfo, error) {
	return s.factory.Create(p)
}

// Encode 构造容器并编码为 DER
func (s *Service) Encode(p params.AsymmetricKeyParameters) ([]byte, error) {
	info, err := s.factory.Create(p)
	if err != nil {
		return nil, err
	}
	return pkcs8.Marshal(info)
}

// EncodePEM 构造容器并编码为 PEM
func (s *Service) EncodePEM(p params.AsymmetricKeyParameters) ([]byte, error) {
	info, err := s.factory.Create(p)
	if err != nil {
		return nil, err
	}
	return pkcs8.EncodePEM(info)
}

// Store 构造容器并写入密钥存储
//
// id 为空时生成随机 ID，返回实际使用的 ID。
func (s *Service) Store(id string, p params.AsymmetricKeyParameters) (string, error) {
	if s.store == nil {
		return "", ErrNoKeystore
	}

	info, err := s.factory.Create(p)
	if err != nil {
		return "", err
	}

	if id == "" {
		id = keystore.NewID()
	}
	if err := s.store.Put(id, info); err != nil {
		return "", fmt.Errorf("store %s: %w", id, err)
	}

	s.log.Info("key stored", "id", id, "algorithm", oid.Name(info.Algorithm.Algorithm))
	return id, nil
}

// Load 从密钥存储读取容器
func (s *Service) Load(id string) (*pkcs8.PrivateKeyInfo, error) {
	if s.store == nil {
		return nil, ErrNoKeystore
	}
	return s.store.Get(id)
}

// LoadKey 从密钥存储读取并还原为标准库私钥
func (s *Service) LoadKey(id string) (crypto.PrivateKey, error) {
	info, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	p, err := pkcs8.KeyParameters(info)
	if err != nil {
		return nil, err
	}
	return params.ToPrivateKey(p)
}

// Delete 删除密钥
func (s *Service) Delete(id string) error {
	if s.store == nil {
		return ErrNoKeystore
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.log.Debug("key deleted", "id", id)
	return nil
}

// List 列出密钥 ID
func (s *Service) List() ([]string, error) {
	if s.store == nil {
		return nil, ErrNoKeystore
	}
	return s.store.List()
}

// Stats 返回工厂统计
func (s *Service) Stats() pkcs8.Stats {
	return s.factory.Stats()
}

// Close 关闭密钥存储
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
