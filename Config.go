package sppfile

import (
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEpochTolerance = 0.005 // 历元分组时间容差 s
	DefaultMaxEpochs      = 86400 // 最大处理历元数
	DefaultElevationMask  = 10.0  // 截止高度角 deg
)

// Config 运行配置, 可由yaml文件覆盖默认值
type Config struct {
	EpochTolerance float64      `yaml:"epoch_tolerance"` // s
	MaxEpochs      int          `yaml:"max_epochs"`
	ElevationMask  float64      `yaml:"elevation_mask"` // deg
	MaxTableSats   int          `yaml:"max_table_sats"`
	LogLevel       string       `yaml:"log_level"`
	Encoding       string       `yaml:"encoding"` // "" 或 gbk
	Solver         SolverConfig `yaml:"solver"`
	Export         ExportConfig `yaml:"export"`
}

// SolverConfig 外部解算程序
type SolverConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// ExportConfig 附加输出文件路径, 为空则不输出
type ExportConfig struct {
	Xlsx    string `yaml:"xlsx"`
	Chart   string `yaml:"chart"`
	Metrics string `yaml:"metrics"`
}

// ProcessingOptions 传给解算器的处理选项
type ProcessingOptions struct {
	Mode           string   `json:"mode"`
	NavSys         []string `json:"navsys"`
	Frequencies    int      `json:"nf"`
	ElevationMask  float64  `json:"elmask"` // rad
	Ephemeris      string   `json:"sateph"`
	Ionosphere     string   `json:"ionoopt"`
	Troposphere    string   `json:"tropopt"`
	Dynamics       bool     `json:"dynamics"`
	TideCorrection bool     `json:"tidecorr"`
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		EpochTolerance: DefaultEpochTolerance,
		MaxEpochs:      DefaultMaxEpochs,
		ElevationMask:  DefaultElevationMask,
		MaxTableSats:   MaxTableSat,
		LogLevel:       "info",
	}
}

// LoadConfig 读取yaml配置, 文件不存在时返回默认配置
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("配置文件不存在, 使用默认配置:", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate 检查配置取值范围
func (c Config) Validate() error {
	if c.EpochTolerance <= 0 {
		return fmt.Errorf("epoch_tolerance must be positive, got %g", c.EpochTolerance)
	}
	if c.MaxEpochs <= 0 {
		return fmt.Errorf("max_epochs must be positive, got %d", c.MaxEpochs)
	}
	if c.ElevationMask < 0 || c.ElevationMask >= 90 {
		return fmt.Errorf("elevation_mask must be in [0, 90), got %g", c.ElevationMask)
	}
	if c.MaxTableSats < 0 {
		return fmt.Errorf("max_table_sats must not be negative, got %d", c.MaxTableSats)
	}
	if c.Encoding != "" && c.Encoding != "gbk" {
		return fmt.Errorf("unsupported encoding %q", c.Encoding)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Tolerance 历元分组容差
func (c Config) Tolerance() time.Duration {
	return time.Duration(c.EpochTolerance * float64(time.Second))
}

// Options 单点定位处理选项
func (c Config) Options() ProcessingOptions {
	return ProcessingOptions{
		Mode:           "single",
		NavSys:         []string{"GPS", "GLO", "GAL", "BDS"},
		Frequencies:    1,
		ElevationMask:  c.ElevationMask * D2R,
		Ephemeris:      "broadcast",
		Ionosphere:     "broadcast",
		Troposphere:    "saastamoinen",
		Dynamics:       false,
		TideCorrection: false,
	}
}
