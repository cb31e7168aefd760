package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuqie6/onepercent/internal/bootstrap"
	"github.com/yuqie6/onepercent/internal/httpapi"
	"github.com/yuqie6/onepercent/internal/pkg/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath, cfgErr := config.DefaultConfigPath()
	if cfgErr == nil {
		if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
			_ = config.WriteFile(cfgPath, config.Default())
		}
	}

	core, err := bootstrap.NewCore(cfgPath)
	if err != nil {
		slog.Error("启动失败", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	slog.Info("OnePercent Agent 启动中...", "name", core.Cfg.App.Name, "version", core.Cfg.App.Version)
	if core.DB.SafeMode {
		slog.Warn("数据库处于安全模式，仅提供诊断信息", "reason", core.DB.MigrationError)
	}

	apiServer, err := httpapi.Start(ctx, core, httpapi.Options{ListenAddr: core.Cfg.Server.ListenAddr})
	if err != nil {
		slog.Error("启动本地 API 失败", "error", err)
		os.Exit(1)
	}
	slog.Info("OnePercent Agent 已启动", "base_url", apiServer.BaseURL())

	// 监听系统信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("正在关闭...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = apiServer.Shutdown(shutdownCtx)
	shutdownCancel()

	slog.Info("OnePercent Agent 已退出")
}
