package writer

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pamguide/internal/types"
)

// epochThreshold 时间列数值超过该值时视为 Unix 时间戳，格式化为日期时间
const epochThreshold = 1e9

// WriteCSV 把分析结果矩阵写入CSV文件
// 第 0 行是表头：时间列留空，频率值保留 4 位小数（宽带模式的占位 0 也留空）
// 数据行：时间列为相对秒数（3 位小数）或绝对日期时间，数据列保留 4 位小数
func WriteCSV(path string, data [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建CSV文件失败: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if len(data) == 0 {
		return fmt.Errorf("结果矩阵为空")
	}

	// 表头行
	header := make([]string, len(data[0]))
	for i, f := range data[0] {
		if f == 0.0 {
			header[i] = ""
		} else {
			header[i] = fmt.Sprintf("%.4f", f)
		}
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	// 数据行
	for _, row := range data[1:] {
		record := make([]string, len(row))
		for i, val := range row {
			if i == 0 {
				record[i] = formatTimeCell(val)
			} else {
				record[i] = fmt.Sprintf("%.4f", val)
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("写入数据行失败: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// formatTimeCell 格式化时间列：Unix 时间戳转为日期时间，否则输出相对秒数
func formatTimeCell(val float64) string {
	if val > epochThreshold {
		sec := int64(val)
		nsec := int64((val - math.Floor(val)) * 1e9)
		return time.Unix(sec, nsec).UTC().Format("2006-01-02 15:04:05.000")
	}
	return fmt.Sprintf("%.3f", val)
}

// OutputFilename 根据输入文件和配置生成单文件输出的CSV文件名
func OutputFilename(inputPath string, cfg *types.AnalysisConfig) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var windowLenStr string
	if cfg.WindowUnit == types.UnitSamples {
		windowLenStr = fmt.Sprintf("%dsamples", int(cfg.WindowLength))
	} else {
		windowLenStr = fmt.Sprintf("%.2fs", cfg.WindowLength)
	}

	return fmt.Sprintf("%s_%s_%s%s_%.0fPercentOverlap.csv",
		stem, analysisName(cfg.AnalysisType), windowLenStr, cfg.WindowType.Name(), cfg.OverlapPercentage)
}

// SummaryFilename 生成批量汇总文件名，编码分析类型、频率范围和校准模式
func SummaryFilename(cfg *types.AnalysisConfig) string {
	calStr := "Relative"
	if cfg.Calibrated {
		calStr = "Calibrated"
	}

	return fmt.Sprintf("PAMGuide_Batch_%s_%.0fHz-%.0fHz_%s_Summary.csv",
		analysisName(cfg.AnalysisType), cfg.LowCutoff, cfg.HighCutoff, calStr)
}

// analysisName 分析类型的显示名称
func analysisName(t types.AnalysisType) string {
	if t == types.AnalysisBroadband {
		return "Broadband"
	}
	return "PSD"
}
