package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"pamguide/internal/types"
)

// TestOutputFilename 单文件输出名编码分析类型、窗参数和重叠
func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.AnalysisConfig
		path string
		want string
	}{
		{
			name: "秒单位PSD",
			cfg: types.AnalysisConfig{
				AnalysisType:      types.AnalysisPSD,
				WindowType:        types.WindowHann,
				WindowLength:      1.0,
				WindowUnit:        types.UnitSeconds,
				OverlapPercentage: 50,
			},
			path: "/data/rec001.wav",
			want: "rec001_PSD_1.00sHann_50PercentOverlap.csv",
		},
		{
			name: "采样单位宽带",
			cfg: types.AnalysisConfig{
				AnalysisType:      types.AnalysisBroadband,
				WindowType:        types.WindowBlackman,
				WindowLength:      8192,
				WindowUnit:        types.UnitSamples,
				OverlapPercentage: 25,
			},
			path: "deep.site2.flac",
			want: "deep.site2_Broadband_8192samplesBlackman_25PercentOverlap.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputFilename(tt.path, &tt.cfg); got != tt.want {
				t.Errorf("文件名 = %q, 期望 %q", got, tt.want)
			}
		})
	}
}

// TestSummaryFilename 汇总文件名编码分析类型、频带和校准模式
func TestSummaryFilename(t *testing.T) {
	cfg := &types.AnalysisConfig{
		AnalysisType: types.AnalysisPSD,
		LowCutoff:    100,
		HighCutoff:   2000,
		Calibrated:   true,
	}
	want := "PAMGuide_Batch_PSD_100Hz-2000Hz_Calibrated_Summary.csv"
	if got := SummaryFilename(cfg); got != want {
		t.Errorf("汇总文件名 = %q, 期望 %q", got, want)
	}

	cfg.Calibrated = false
	cfg.AnalysisType = types.AnalysisBroadband
	want = "PAMGuide_Batch_Broadband_100Hz-2000Hz_Relative_Summary.csv"
	if got := SummaryFilename(cfg); got != want {
		t.Errorf("汇总文件名 = %q, 期望 %q", got, want)
	}
}

// TestWriteCSVFormatting 单元格格式：表头空白占位、相对秒数和分贝值的小数位
func TestWriteCSVFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	data := [][]float64{
		{0, 100.5, 200},
		{0, -51.23456, -60.1},
		{1.5, -52, -61},
	}

	if err := WriteCSV(path, data); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("行数 = %d, 期望 3", len(records))
	}

	// 表头：时间列留空，频率保留 4 位小数
	if records[0][0] != "" {
		t.Errorf("表头时间列 = %q, 期望空", records[0][0])
	}
	if records[0][1] != "100.5000" || records[0][2] != "200.0000" {
		t.Errorf("表头频率列 = %v", records[0][1:])
	}

	// 相对时间 3 位小数，数据 4 位小数
	if records[1][0] != "0.000" || records[2][0] != "1.500" {
		t.Errorf("时间列 = %q, %q", records[1][0], records[2][0])
	}
	if records[1][1] != "-51.2346" {
		t.Errorf("数据单元格 = %q, 期望 -51.2346", records[1][1])
	}
}

// TestWriteCSVAbsoluteTime 大于 1e9 的时间值格式化为日期时间
func TestWriteCSVAbsoluteTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	// 2023-06-01 12:00:00.500 UTC
	data := [][]float64{
		{0, 0},
		{1685620800.5, -42},
	}

	if err := WriteCSV(path, data); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	records := readCSV(t, path)
	if got := records[1][0]; got != "2023-06-01 12:00:00.500" {
		t.Errorf("绝对时间单元格 = %q, 期望 2023-06-01 12:00:00.500", got)
	}
}

// readCSV 读回CSV内容
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开CSV失败: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("读取CSV失败: %v", err)
	}
	return records
}
