package config

import (
	"fmt"

	"pamguide/internal/types"

	"github.com/spf13/viper"
)

// Load 从配置文件加载分析配置并校验
// 支持 TOML 和 YAML 格式，格式由文件扩展名决定
func Load(path string) (*types.AnalysisConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := &types.AnalysisConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	return cfg, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "output")
	v.SetDefault("write_csv", true)
	v.SetDefault("create_batch_summary_file", true)
	v.SetDefault("write_individual_batch_csvs", false)

	v.SetDefault("window_type", string(types.WindowHann))
	v.SetDefault("window_length", 1.0)
	v.SetDefault("window_unit", string(types.UnitSeconds))
	v.SetDefault("overlap_percentage", 50.0)
}
