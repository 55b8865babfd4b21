package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Log       LogConfig       `toml:"log"`
	Billing   BillingConfig   `toml:"billing"`
	Formula   FormulaConfig   `toml:"formula"`
	Reconcile ReconcileConfig `toml:"reconcile"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	History bool   `toml:"history"` // 是否记录上传与对比历史
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
}

// BillingConfig 表格1（账单数据）读取配置
type BillingConfig struct {
	SheetName    string `toml:"sheet_name"`
	NameColumn   string `toml:"name_column"`
	AmountColumn string `toml:"amount_column"`
}

// FormulaConfig 表格2（楼栋公式表）读取配置
type FormulaConfig struct {
	SheetSuffix  string `toml:"sheet_suffix"`
	MinBuilding  int    `toml:"min_building"`
	MaxBuilding  int    `toml:"max_building"`
	FirstDataRow int    `toml:"first_data_row"` // 前面为表头，从该行开始读取
	FloorColumn  string `toml:"floor_column"`
	AmountColumn string `toml:"amount_column"`
}

// ReconcileConfig 对数配置
type ReconcileConfig struct {
	Rounding     string `toml:"rounding"`      // half_up / half_even
	MatchWorkers int    `toml:"match_workers"` // 0 表示顺序匹配
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			History: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Billing: BillingConfig{
			SheetName:    "账单数据",
			NameColumn:   "资源名称",
			AmountColumn: "增量推账金额(元)",
		},
		Formula: FormulaConfig{
			SheetSuffix:  "栋",
			MinBuilding:  1,
			MaxBuilding:  34,
			FirstDataRow: 12,
			FloorColumn:  "B",
			AmountColumn: "G",
		},
		Reconcile: ReconcileConfig{
			Rounding:     "half_up",
			MatchWorkers: 0,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadConfigFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadConfigFrom 从指定路径加载配置，文件不存在时使用默认配置
// 之后依次应用 .env 与环境变量覆盖
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// .env 可选，已存在的环境变量不会被覆盖
	_ = godotenv.Load(filepath.Join(filepath.Dir(configPath), ".env"))
	applyEnvOverrides(config, &info)

	return config, info, nil
}

// applyEnvOverrides 环境变量覆盖（用于 E2E / 本地运行）
func applyEnvOverrides(config *AppConfig, info *LoadConfigInfo) {
	if v := os.Getenv("GONGTAN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
			info.PortSpecified = true
		}
	}
	if v := os.Getenv("GONGTAN_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("GONGTAN_ROUNDING"); v != "" {
		config.Reconcile.Rounding = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// ResolveDataDir 数据目录：绝对路径原样使用，相对路径位于可执行文件同目录下
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"exports"}
	for _, subdir := range subdirs {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath 获取数据文件路径
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(ResolveDataDir(config), subdir, filename)
}
