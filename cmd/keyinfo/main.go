// Package main 提供 keyinfo 命令行入口
//
// 将 PEM 私钥转换为 PKCS#8 PrivateKeyInfo：
//
//	keyinfo id_rsa dsa.pem          # 写出 id_rsa.p8、dsa.pem.p8
//	keyinfo -stdout id_rsa          # 输出到标准输出
//	keyinfo -store id_rsa           # 同时写入密钥存储
//	keyinfo -list                   # 列出密钥存储中的 ID
//	keyinfo -get id_rsa             # 以 PEM 输出存储的密钥
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-keyinfo/config"
	"github.com/dep2p/go-keyinfo/internal/core/keystore"
	"github.com/dep2p/go-keyinfo/internal/util/logger"
	"github.com/dep2p/go-keyinfo/pkg/lib/crypto/params"

	keyinfosvc "github.com/dep2p/go-keyinfo/internal/core/keyinfo"
	pkcs8 "github.com/dep2p/go-keyinfo/pkg/lib/crypto/keyinfo"
)

var log = logger.Logger("cmd")

// outputExt 输出文件后缀
const outputExt = ".p8"

// options 命令行参数
type options struct {
	configFile string
	backend    string
	dataDir    string
	toStdout   bool
	store      bool
	list       bool
	get        string
	version    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(os.Stderr, "错误: %v\n", e)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, []string, error) {
	opts := &options{}
	fs := flag.NewFlagSet("keyinfo", flag.ContinueOnError)

	fs.StringVar(&opts.configFile, "config", "", "配置文件路径")
	fs.StringVar(&opts.backend, "backend", "", "密钥存储后端 (memory/fs/badger)，覆盖配置文件")
	fs.StringVar(&opts.dataDir, "data-dir", "", "数据目录，覆盖配置文件")
	fs.BoolVar(&opts.toStdout, "stdout", false, "输出到标准输出而不是 <file>.p8")
	fs.BoolVar(&opts.store, "store", false, "同时写入密钥存储")
	fs.BoolVar(&opts.list, "list", false, "列出密钥存储中的 ID")
	fs.StringVar(&opts.get, "get", "", "以 PEM 输出密钥存储中的指定 ID")
	fs.BoolVar(&opts.version, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs.Args(), nil
}

func run(args []string, stdout io.Writer) error {
	opts, files, err := parseFlags(args)
	if err != nil {
		return err
	}

	if opts.version {
		fmt.Fprintf(stdout, "keyinfo %s\n", keyinfosvc.Version)
		return nil
	}

	if err := checkFlags(opts, files); err != nil {
		return err
	}
	needStore := opts.store || opts.list || opts.get != ""

	cfg, err := loadConfig(opts, needStore)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	var svc *keyinfosvc.Service
	app := keyinfosvc.NewApp(cfg, fx.Populate(&svc))
	if err := app.Err(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(ctx); err != nil {
			log.Warn("stop app", "err", err)
		}
	}()

	switch {
	case opts.list:
		return listKeys(svc, stdout)
	case opts.get != "":
		return getKey(svc, opts.get, stdout)
	}

	var errs error
	for _, path := range files {
		if err := convertFile(svc, path, opts, stdout); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	stats := svc.Stats()
	log.Info("conversion finished",
		"files", len(files),
		"rsa", stats.RSA,
		"dsa", stats.DSA,
		"rejected", stats.Rejected,
		"failed", len(multierr.Errors(errs)))
	return errs
}

var errFlagConflict = errors.New("conflicting flags")

// checkFlags 检查参数组合
//
// -list、-get 只读取密钥存储，不能与输入文件、-store 或彼此同时使用。
func checkFlags(opts *options, files []string) error {
	query := opts.list || opts.get != ""
	switch {
	case opts.list && opts.get != "":
		return fmt.Errorf("%w: -list and -get", errFlagConflict)
	case query && len(files) > 0:
		return fmt.Errorf("%w: -list/-get do not take input files", errFlagConflict)
	case query && (opts.store || opts.toStdout):
		return fmt.Errorf("%w: -list/-get cannot be combined with -store or -stdout", errFlagConflict)
	case !query && len(files) == 0:
		return errors.New("no input files")
	}
	return nil
}

// loadConfig 加载配置并应用命令行覆盖
//
// 不需要密钥存储时改用内存后端，避免创建数据目录。
func loadConfig(opts *options, needStore bool) (*config.Config, error) {
	cfg := config.NewConfig()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configFile); err != nil {
			return nil, err
		}
	}

	if opts.backend != "" {
		cfg.Keystore.Backend = opts.backend
	}
	if opts.dataDir != "" {
		cfg.Keystore.DataDir = opts.dataDir
	}
	if !needStore {
		cfg.Keystore.Backend = config.BackendMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// convertFile 转换单个 PEM 文件
func convertFile(svc *keyinfosvc.Service, path string, opts *options, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	key, err := readPrivateKey(data)
	if err != nil {
		return err
	}
	p, err := params.FromPrivateKey(key)
	if err != nil {
		return err
	}

	out, err := svc.EncodePEM(p)
	if err != nil {
		return err
	}

	if opts.toStdout {
		if _, err := stdout.Write(out); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(path+outputExt, out, 0600); err != nil {
			return err
		}
		log.Debug("wrote private key info", "path", path+outputExt)
	}

	if opts.store {
		id, err := svc.Store(keyID(path), p)
		if err != nil {
			return err
		}
		if !opts.toStdout {
			fmt.Fprintf(stdout, "%s -> %s\n", path, id)
		}
	}
	return nil
}

// keyID 由文件名推导密钥 ID，不合法时返回空串（由存储生成随机 ID）
func keyID(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	if keystore.ValidateID(id) != nil {
		return ""
	}
	return id
}

func listKeys(svc *keyinfosvc.Service, stdout io.Writer) error {
	ids, err := svc.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(stdout, id)
	}
	return nil
}

func getKey(svc *keyinfosvc.Service, id string, stdout io.Writer) error {
	info, err := svc.Load(id)
	if err != nil {
		return err
	}
	out, err := pkcs8.EncodePEM(info)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}
