package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jij0517269/gongtan-duishu-tool/internal/config"
	"github.com/jij0517269/gongtan-duishu-tool/internal/logging"
	"github.com/jij0517269/gongtan-duishu-tool/internal/server"
	"github.com/jij0517269/gongtan-duishu-tool/internal/util"
)

var (
	port     = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode  = flag.Bool("dev", false, "开发模式")
	dataDir  = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	rounding = flag.String("rounding", "", "取整方式 half_up / half_even (覆盖配置文件)")
	noOpen   = flag.Bool("no-browser", false, "启动后不自动打开浏览器")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  公摊对数工具")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}
	logging.Setup(cfg.Log.Level)
	if err != nil {
		slog.Warn("加载配置失败，使用默认配置", "error", err)
	} else {
		slog.Debug("配置已加载", "path", info.Path)
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *rounding != "" {
		cfg.Reconcile.Rounding = *rounding
	}

	if !util.PortAvailable(cfg.Server.Port) {
		slog.Error("端口已被占用", "port", cfg.Server.Port)
		os.Exit(1)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		slog.Error("服务初始化失败", "error", err)
		os.Exit(1)
	}
	slog.Info("数据目录", "path", config.ResolveDataDir(cfg), "rounding", cfg.Reconcile.Rounding)

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		slog.Info("服务启动", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			slog.Error("服务启动失败", "error", err)
			os.Exit(1)
		}
	}()

	if cfg.Server.DevMode {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	} else if !*noOpen {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("关闭服务失败", "error", err)
	}
}
