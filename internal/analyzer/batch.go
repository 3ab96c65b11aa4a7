package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pamguide/internal/decoder"
	"pamguide/internal/timestamp"
	"pamguide/internal/types"
	"pamguide/internal/writer"

	"github.com/schollz/progressbar/v3"
)

// ProcessFile 分析单个音频文件并按配置写出CSV
func ProcessFile(filePath string, cfg *types.AnalysisConfig, quiet bool) error {
	startedAt := time.Now()
	if !quiet {
		fmt.Printf("处理文件: %s\n", filePath)
	}

	registry := decoder.NewDecoderRegistry()
	audio, err := registry.DecodeFile(filePath)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("  读取 %d 个采样，采样率 %d Hz\n", len(audio.Samples), audio.SampleRate)
	}

	sensitivityDB, err := SystemSensitivityDB(cfg)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("  系统灵敏度 (S): %.2f dB\n", sensitivityDB)
	}

	result, err := Analyze(audio.Samples, audio.SampleRate, cfg, sensitivityDB, nil)
	if err != nil {
		return err
	}

	if cfg.WriteCSV {
		outputPath := filepath.Join(cfg.OutputDir, writer.OutputFilename(filePath, cfg))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
		if err := writer.WriteCSV(outputPath, result.Data); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("  结果已写入: %s\n", outputPath)
		}
	}

	if !quiet {
		fmt.Printf("  处理完成，耗时 %.2f 秒\n", time.Since(startedAt).Seconds())
	}
	return nil
}

// ProcessDirectory 批量分析目录下的所有音频文件
// 文件按顺序依次处理，单个文件失败只记录并跳过，不会中断整个批次；
// 全部处理完后按配置生成汇总CSV（所有文件都有时间戳时按时间排序拼接）
func ProcessDirectory(dirPath string, cfg *types.AnalysisConfig, quiet bool) error {
	registry := decoder.NewDecoderRegistry()

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("读取目录失败: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dirPath, entry.Name())
		if registry.Supported(path) {
			files = append(files, path)
		}
	}

	if len(files) == 0 {
		fmt.Println("目录中没有找到支持的音频文件")
		return nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	sensitivityDB, err := SystemSensitivityDB(cfg)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("批量分析音频文件"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowIts(),
		)
	}

	startedAt := time.Now()
	var results []*Result

	for _, path := range files {
		result, err := processBatchFile(registry, path, cfg, sensitivityDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  处理 %s 失败: %v，已跳过\n", path, err)
		} else {
			if cfg.WriteCSV && cfg.WriteIndividualBatchCSVs {
				outputPath := filepath.Join(cfg.OutputDir, writer.OutputFilename(path, cfg))
				if err := writer.WriteCSV(outputPath, result.Data); err != nil {
					fmt.Fprintf(os.Stderr, "  写入单文件CSV %s 失败: %v\n", outputPath, err)
				}
			}
			results = append(results, result)
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	// 生成批量汇总
	if cfg.CreateBatchSummaryFile && cfg.WriteCSV && len(results) > 0 {
		combined, err := Concatenate(results, cfg)
		if err != nil {
			// 汇总失败只影响汇总文件本身，单文件结果已经写出
			fmt.Fprintf(os.Stderr, "  生成批量汇总失败: %v\n", err)
		} else {
			summaryPath := filepath.Join(cfg.OutputDir, writer.SummaryFilename(cfg))
			if err := writer.WriteCSV(summaryPath, combined.Data); err != nil {
				fmt.Fprintf(os.Stderr, "  写入批量汇总 %s 失败: %v\n", summaryPath, err)
			} else if !quiet {
				fmt.Printf("批量汇总已写入: %s\n", summaryPath)
			}
		}
	}

	if !quiet {
		fmt.Printf("批量处理完成，耗时 %.2f 秒，共处理 %d 个文件（成功 %d 个）\n",
			time.Since(startedAt).Seconds(), len(files), len(results))
	}
	return nil
}

// processBatchFile 批量模式下处理单个文件，返回结果矩阵供汇总拼接
func processBatchFile(registry *decoder.DecoderRegistry, path string, cfg *types.AnalysisConfig, sensitivityDB float64) (*Result, error) {
	audio, err := registry.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	var startTime *time.Time
	if cfg.TimestampFormat != "" {
		t, err := timestamp.ParseFromFilename(path, cfg.TimestampFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  警告: %v，该文件在汇总中使用相对时间\n", err)
		} else {
			startTime = &t
		}
	}

	return Analyze(audio.Samples, audio.SampleRate, cfg, sensitivityDB, startTime)
}
