package cmd

import (
	"fmt"
	"os"

	"pamguide/internal/analyzer"
	"pamguide/internal/config"

	"github.com/spf13/cobra"
)

var (
	configFile string
	inputPath  string
	quiet      bool
	version    = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "pamguide",
	Short: "计算校准声级频谱的被动声学监测分析工具",
	Long: `PAMGuide 是一个被动声学监测 (PAM) 分析工具，按 PAMGuide 方法
从录音波形计算校准后的功率谱密度 (PSD) 或宽带声级。

支持 WAV 和 FLAC 格式的单声道录音。分析参数（窗函数、重叠、
频率范围、Welch 平均、校准方式等）通过 TOML/YAML 配置文件指定，
输入可以是单个文件或整个目录（批量模式，自动生成汇总CSV）。`,
	RunE: runAnalysis,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "config.toml", "配置文件路径")
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "输入文件或目录（覆盖配置中的 input_path）")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "静默模式，只输出错误")
	rootCmd.Flags().BoolP("version", "v", false, "显示版本信息")

	rootCmd.SetVersionTemplate("pamguide version {{.Version}}\n")
	rootCmd.Version = version
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("加载配置 %s 失败: %w", configFile, err)
	}

	// 命令行参数优先于配置文件
	target := inputPath
	if target == "" {
		target = cfg.InputPath
	}
	if target == "" {
		return fmt.Errorf("未指定输入路径（使用 --input 或在配置中设置 input_path）")
	}

	info, err := os.Stat(target)
	if os.IsNotExist(err) {
		return fmt.Errorf("输入路径不存在: %s", target)
	}
	if err != nil {
		return err
	}

	if info.IsDir() {
		return analyzer.ProcessDirectory(target, cfg, quiet)
	}
	return analyzer.ProcessFile(target, cfg, quiet)
}
