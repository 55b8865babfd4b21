// duishu 命令行批量对数：读取两张表格，输出标色结果工作簿
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jij0517269/gongtan-duishu-tool/internal/config"
	"github.com/jij0517269/gongtan-duishu-tool/internal/exporter"
	"github.com/jij0517269/gongtan-duishu-tool/internal/importer"
	"github.com/jij0517269/gongtan-duishu-tool/internal/logging"
	"github.com/jij0517269/gongtan-duishu-tool/internal/reconcile"
)

var (
	billingPath = flag.String("billing", "", "表格1（账单数据）路径")
	formulaPath = flag.String("formula", "", "表格2（楼栋公式表）路径")
	outPath     = flag.String("out", "对数结果.xlsx", "结果输出路径")
	configPath  = flag.String("config", "", "配置文件路径（默认可执行文件同目录 config.toml）")
	rounding    = flag.String("rounding", "", "取整方式 half_up / half_even (覆盖配置文件)")
	workers     = flag.Int("workers", -1, "并行匹配数，0 为顺序匹配 (覆盖配置文件)")
)

func main() {
	flag.Parse()
	if *billingPath == "" || *formulaPath == "" {
		fmt.Fprintln(os.Stderr, "用法: duishu -billing 表格1.xlsx -formula 表格2.xlsx [-out 对数结果.xlsx]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(); err != nil {
		slog.Error("对数失败", "error", err)
		os.Exit(1)
	}
}

type configLoader func() (*config.AppConfig, config.LoadConfigInfo, error)

// initConfig 读取配置并初始化日志
//
// 指定 path 时读取失败即返回错误；否则默认配置文件读取失败时回退默认配置，
// 日志初始化后记录告警。
func initConfig(path string, loadDefault configLoader, logOut io.Writer) (*config.AppConfig, error) {
	var (
		cfg         *config.AppConfig
		fallbackErr error
	)
	if path != "" {
		loaded, _, err := config.LoadConfigFrom(path)
		if err != nil {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
		cfg = loaded
	} else {
		loaded, _, err := loadDefault()
		if err != nil {
			loaded, fallbackErr = config.DefaultConfig(), err
		}
		cfg = loaded
	}

	logging.SetupWriter(logOut, logging.ParseLevel(cfg.Log.Level))
	if fallbackErr != nil {
		slog.Warn("加载配置失败，使用默认配置", "error", fallbackErr)
	}
	return cfg, nil
}

func run() error {
	cfg, err := initConfig(*configPath, config.LoadConfigWithInfo, os.Stderr)
	if err != nil {
		return err
	}

	if *rounding != "" {
		cfg.Reconcile.Rounding = *rounding
	}
	if *workers >= 0 {
		cfg.Reconcile.MatchWorkers = *workers
	}
	mode, err := reconcile.ParseRoundingMode(cfg.Reconcile.Rounding)
	if err != nil {
		return err
	}

	im, err := importer.New(importer.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	// 两张表格互不依赖，并行读取
	var (
		billing *importer.BillingResult
		formula *importer.FormulaResult
	)
	var g errgroup.Group
	g.Go(func() error {
		f, err := os.Open(*billingPath)
		if err != nil {
			return err
		}
		defer f.Close()
		billing, err = im.ReadBilling(f, filepath.Base(*billingPath))
		if err != nil {
			return fmt.Errorf("读取表格1失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		f, err := os.Open(*formulaPath)
		if err != nil {
			return err
		}
		defer f.Close()
		formula, err = im.ReadFormula(f, filepath.Base(*formulaPath))
		if err != nil {
			return fmt.Errorf("读取表格2失败: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	start := time.Now()
	result := reconcile.Run(billing.Records, formula.Sheets, reconcile.Options{
		Rounding:     mode,
		MatchWorkers: cfg.Reconcile.MatchWorkers,
	})
	stats := result.Stats
	slog.Info("对比完成",
		"total", stats.Total,
		"consistent", stats.ConsistentCount,
		"consistent_pct", stats.ConsistentPct,
		"inconsistent", stats.InconsistentCount,
		"inconsistent_pct", stats.InconsistentPct,
		"missing", stats.MissingCount,
		"malformed", stats.MalformedCount,
		"duration", time.Since(start),
	)

	file, err := exporter.NewExporter().Export(result.Rows, exporter.ExportOptions{Stats: &stats})
	if err != nil {
		return err
	}
	defer file.Close()
	if err := file.SaveAs(*outPath); err != nil {
		return fmt.Errorf("保存结果失败: %w", err)
	}

	fmt.Printf("总计 %d 行：一致 %d (%.1f%%)，不一致 %d (%.1f%%)，其他 %d\n",
		stats.Total, stats.ConsistentCount, stats.ConsistentPct,
		stats.InconsistentCount, stats.InconsistentPct, stats.OtherCount)
	fmt.Printf("结果已保存: %s\n", *outPath)
	return nil
}
