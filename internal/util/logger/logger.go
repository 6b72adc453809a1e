// Package logger 提供 keyinfo 的统一日志系统
//
// 基于标准库 log/slog，支持按子系统配置日志级别，
// 通过环境变量（KEYINFO_LOG_LEVEL, KEYINFO_LOG_FORMAT）或 Configure 配置。
//
// 使用示例:
//
//	var log = logger.Logger("keystore")
//
//	func foo() {
//	    log.Info("key stored", "id", id, "algorithm", alg)
//	    log.Error("store failed", "err", err)
//	}
//
// 环境变量配置:
//
//	# keystore 模块 debug，其余 warn
//	KEYINFO_LOG_LEVEL=keystore=debug,warn
//
//	# JSON 格式输出
//	KEYINFO_LOG_FORMAT=json
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// handlers 缓存各子系统的 Handler（用于动态调整级别）
	handlers sync.Map // map[string]*subsystemHandler
)

// Logger 获取指定子系统的 Logger
//
// 同一子系统多次调用返回相同实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	h := newHandler(subsystem, cfg.LevelForSubsystem(subsystem), cfg.Format, cfg.AddSource)
	l := slog.New(h)

	actual, loaded := loggers.LoadOrStore(subsystem, l)
	if !loaded {
		handlers.Store(subsystem, h)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
func SetLevel(subsystem string, level slog.Level) {
	if h, ok := handlers.Load(subsystem); ok {
		h.(*subsystemHandler).SetLevel(level)
	}
}

// SetGlobalLevel 设置所有已创建子系统的日志级别
func SetGlobalLevel(level slog.Level) {
	handlers.Range(func(_, value any) bool {
		value.(*subsystemHandler).SetLevel(level)
		return true
	})
}

// Configure 用显式配置覆盖环境变量配置
//
// 已创建的 Logger 会按新配置调整级别；格式只影响之后创建的 Logger。
func Configure(level, format string) {
	cfg := ConfigFromEnv()

	configMu.Lock()
	if level != "" {
		parseLevelConfig(cfg, level)
	}
	if format != "" {
		cfg.Format = parseFormat(format)
	}
	configMu.Unlock()

	handlers.Range(func(key, value any) bool {
		value.(*subsystemHandler).SetLevel(cfg.LevelForSubsystem(key.(string)))
		return true
	})
}

// Discard 返回一个丢弃所有日志的 Logger
//
// 主要用于测试。
func Discard() *slog.Logger {
	return slog.New(DiscardHandler())
}

// SetOutput 设置全局日志输出目标
//
// 通过 dynamicWriter 生效，已创建的 Logger 也会重定向。
func SetOutput(w io.Writer) {
	globalOutputMu.Lock()
	globalOutput = w
	globalOutputMu.Unlock()
}
