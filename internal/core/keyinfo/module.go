package keyinfo

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-keyinfo/config"
	"github.com/dep2p/go-keyinfo/internal/core/keystore"

	pkcs8 "github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// 配置（可选，使用默认配置）
	Config *config.Config `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Factory  *pkcs8.Factory
	Keystore keystore.Keystore
	Service  *Service
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	cfg := config.NewConfig()
	if input.Config != nil {
		cfg = input.Config
	}
	if err := cfg.Validate(); err != nil {
		return ModuleOutput{}, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Log.Apply()

	store, err := keystore.Open(cfg.Keystore)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("open keystore: %w", err)
	}

	factory := pkcs8.NewFactory(pkcs8.WithLogger(log))

	return ModuleOutput{
		Factory:  factory,
		Keystore: store,
		Service:  NewService(factory, store),
	}, nil
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module(Name,
		fx.Provide(ProvideServices),
		fx.Invoke(registerLifecycle),
	)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC      fx.Lifecycle
	Service *Service
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Debug("keyinfo module started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			if err := input.Service.Close(); err != nil {
				log.Warn("close keystore", "err", err)
				return err
			}
			return nil
		},
	})
}

// NewApp 构建带本模块的 Fx 应用
//
// cfg 为 nil 时使用默认配置，Fx 自身的事件日志被丢弃。
func NewApp(cfg *config.Config, opts ...fx.Option) *fx.App {
	all := []fx.Option{
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		Module(),
	}
	if cfg != nil {
		all = append(all, fx.Supply(cfg))
	}
	return fx.New(append(all, opts...)...)
}

// ============================================================================
//                              模块元信息
// ============================================================================

// 模块元信息常量
const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "keyinfo"
	// Description 模块描述
	Description = "私钥容器模块，提供 PKCS#8 编码与密钥存储能力"
)
