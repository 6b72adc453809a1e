package keyinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-keyinfo/config"
	"github.com/dep2p/go-keyinfo/internal/core/keystore"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

func TestModule_Load(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Keystore.Backend = config.BackendMemory

	var svc *Service
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&svc),
	)
	app.RequireStart()

	require.NotNil(t, svc)
	_, err := svc.Store("k", dsaParams())
	require.NoError(t, err)

	app.RequireStop()

	_, err = svc.Load("k")
	assert.ErrorIs(t, err, keystore.ErrClosed)
}

func TestModule_Badger(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Keystore.Backend = config.BackendBadger
	cfg.Keystore.DataDir = t.TempDir()

	var store keystore.Keystore
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&store),
	)
	app.RequireStart()

	assert.IsType(t, &keystore.BadgerKeystore{}, store)
	app.RequireStop()
}

func TestModule_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Keystore.Backend = "tape"

	app := NewApp(cfg, fx.Invoke(func(*Service) {}))
	assert.Error(t, app.Err())
}

func TestNewApp(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Keystore.Backend = config.BackendMemory

	var svc *Service
	app := NewApp(cfg, fx.Populate(&svc))
	require.NoError(t, app.Err())

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	assert.NotNil(t, svc)
	require.NoError(t, app.Stop(ctx))
}

func TestProvideServices(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Keystore.DataDir = t.TempDir()

	out, err := ProvideServices(ModuleInput{Config: cfg})
	require.NoError(t, err)
	defer out.Service.Close()

	assert.IsType(t, &keystore.FSKeystore{}, out.Keystore)
	assert.NotNil(t, out.Factory)
}
