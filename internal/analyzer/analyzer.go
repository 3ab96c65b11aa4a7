package analyzer

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"pamguide/internal/types"
)

// Result 单个文件的分析结果矩阵
// Data 的第 0 行是表头（时间列占位 + 频率值或宽带占位），
// 之后每行是一个分析片段（或 Welch 分组）的时间值和分贝值
type Result struct {
	Data      [][]float64
	StartTime *time.Time // 从文件名解析出的绝对起始时间，可能为空
}

// Analyze 对一段单声道信号执行完整的声级分析
// 流程：分段 → 加窗 → 谱估计（并行）→ 可选 Welch 平均 → 分贝换算 → 矩阵组装
// sensitivityDB 是 SystemSensitivityDB 算出的系统灵敏度 S，
// startTime 为空时时间列为相对秒数
func Analyze(samples []float64, sampleRate int, cfg *types.AnalysisConfig, sensitivityDB float64, startTime *time.Time) (*Result, error) {
	fs := float64(sampleRate)
	totalSamples := len(samples)

	// 窗长换算为采样点数
	var windowSamples int
	switch cfg.WindowUnit {
	case types.UnitSamples:
		windowSamples = int(cfg.WindowLength)
	default:
		windowSamples = int(math.Round(cfg.WindowLength * fs))
	}

	if windowSamples == 0 || windowSamples > totalSamples {
		return nil, fmt.Errorf("%w: 窗长 %d，信号长度 %d", ErrInvalidWindow, windowSamples, totalSamples)
	}

	overlapRatio := cfg.OverlapPercentage / 100.0
	step := int(math.Round(float64(windowSamples) * (1.0 - overlapRatio)))
	if step == 0 {
		return nil, ErrZeroStep
	}

	scaledWindow, _ := GenerateScaledWindow(cfg.WindowType, windowSamples)
	noiseBW := NoisePowerBandwidth(scaledWindow)
	delf := fs / float64(windowSamples)
	pref := cfg.Environment.ReferencePressure()

	// 单边谱频率轴：完整频率轴 linspace(0, fs/2, N/2+1) 去掉直流点，
	// 功率谱第 j 个频点对应 f[j+1]
	half := windowSamples / 2
	pssFreqs := make([]float64, half)
	for j := range pssFreqs {
		pssFreqs[j] = float64(j+1) * (fs / 2.0) / float64(half)
	}

	lowIdx, highIdx := selectFrequencyRange(pssFreqs, cfg.LowCutoff, cfg.HighCutoff)
	if lowIdx > highIdx {
		return nil, fmt.Errorf("%w: 低频 %g Hz，高频 %g Hz", ErrInvalidFrequencyRange, cfg.LowCutoff, cfg.HighCutoff)
	}
	selectedFreqs := pssFreqs[lowIdx : highIdx+1]

	// 分段
	numSegments := 0
	if totalSamples >= windowSamples {
		numSegments = (totalSamples-windowSamples)/step + 1
	}
	if numSegments == 0 {
		return nil, ErrSignalTooShort
	}

	// 并行逐段计算功率谱：各片段只读共享的信号和窗，
	// 结果写入各自独立的槽位，收集顺序与片段索引一致
	powerSpectra := make([][]float64, numSegments)
	jobs := make(chan int, numSegments)

	numWorkers := runtime.NumCPU()
	if numWorkers > numSegments {
		numWorkers = numSegments
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				start := i * step
				windowed := make([]float64, windowSamples)
				for j := 0; j < windowSamples; j++ {
					windowed[j] = samples[start+j] * scaledWindow[j]
				}

				fullSpectrum := SingleSidedPowerSpectrum(windowed)
				powerSpectra[i] = fullSpectrum[lowIdx : highIdx+1]
			}
		}()
	}

	for i := 0; i < numSegments; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// 可选的 Welch 平均
	welchMultiplier := 1.0
	if k := cfg.WelchFactor; k > 1 && k <= numSegments {
		powerSpectra = welchAverage(powerSpectra, k)
		welchMultiplier = float64(k)
	}

	// 分贝换算并组装结果矩阵
	numCols := len(selectedFreqs)
	if cfg.AnalysisType == types.AnalysisBroadband {
		numCols = 1
	}

	data := make([][]float64, len(powerSpectra)+1)

	// 表头行：时间列留空（0 占位），PSD 模式下其余列是选中的频率值
	header := make([]float64, numCols+1)
	if cfg.AnalysisType == types.AnalysisPSD {
		copy(header[1:], selectedFreqs)
	}
	data[0] = header

	timeStep := float64(step) / fs
	startSeconds := 0.0
	if startTime != nil {
		startSeconds = float64(startTime.Unix()) + float64(startTime.Nanosecond())*1e-9
	}

	for i, power := range powerSpectra {
		row := make([]float64, numCols+1)
		row[0] = startSeconds + float64(i)*timeStep*welchMultiplier

		if cfg.AnalysisType == types.AnalysisPSD {
			for j, p := range power {
				row[j+1] = PowerToDB(p/(delf*noiseBW), pref) - sensitivityDB
			}
		} else {
			sum := 0.0
			for _, p := range power {
				sum += p
			}
			row[1] = PowerToDB(sum, pref) - sensitivityDB
		}

		data[i+1] = row
	}

	return &Result{Data: data, StartTime: startTime}, nil
}

// selectFrequencyRange 在单边谱频率轴上解析截止频率对应的频点索引范围
// 低频索引取第一个 >= lowCutoff 的频点（找不到则为 0），
// 高频索引取最后一个 <= highCutoff 的频点（找不到则为最后一个）
func selectFrequencyRange(pssFreqs []float64, lowCutoff, highCutoff float64) (int, int) {
	lowIdx := 0
	for i, f := range pssFreqs {
		if f >= lowCutoff {
			lowIdx = i
			break
		}
	}

	highIdx := len(pssFreqs) - 1
	for i := len(pssFreqs) - 1; i >= 0; i-- {
		if pssFreqs[i] <= highCutoff {
			highIdx = i
			break
		}
	}

	return lowIdx, highIdx
}

// welchAverage 把逐段功率谱按 k 个一组做逐频点平均，末组可以不满 k 个
// 输出组数为 ceil(len(spectra)/k)
func welchAverage(spectra [][]float64, k int) [][]float64 {
	numSegments := len(spectra)
	numGroups := (numSegments + k - 1) / k
	numFreqs := len(spectra[0])

	averaged := make([][]float64, 0, numGroups)
	for g := 0; g < numGroups; g++ {
		start := g * k
		end := start + k
		if end > numSegments {
			end = numSegments
		}

		avg := make([]float64, numFreqs)
		for j := 0; j < numFreqs; j++ {
			sum := 0.0
			for i := start; i < end; i++ {
				sum += spectra[i][j]
			}
			avg[j] = sum / float64(end-start)
		}
		averaged = append(averaged, avg)
	}

	return averaged
}

// PowerToDB 把线性功率值换算为相对参考声压的分贝值
// value <= 0 或 reference <= 0 时返回负无穷（静音片段的约定处理）
func PowerToDB(value, reference float64) float64 {
	if value <= 0 || reference <= 0 {
		return math.Inf(-1)
	}
	return 10.0 * math.Log10(value/(reference*reference))
}

// Concatenate 把多个文件的结果矩阵拼接为批量汇总矩阵
// 所有文件都有可解析的起始时间时先按时间排序，否则按原顺序拼接并输出警告
// PSD 模式下列数不一致返回 ErrColumnMismatch
func Concatenate(results []*Result, cfg *types.AnalysisConfig) (*Result, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("没有可拼接的分析结果")
	}

	allTimestamped := true
	for _, r := range results {
		if r.StartTime == nil {
			allTimestamped = false
			break
		}
	}

	sorted := make([]*Result, len(results))
	copy(sorted, results)
	if allTimestamped {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].StartTime.Before(*sorted[j].StartTime)
		})
	} else {
		fmt.Fprintln(os.Stderr, "警告: 部分文件没有可解析的时间戳，按原顺序拼接")
	}

	first := sorted[0]
	numCols := len(first.Data[0])
	totalRows := 1
	for _, r := range sorted {
		if cfg.AnalysisType == types.AnalysisPSD && len(r.Data[0]) != numCols {
			return nil, fmt.Errorf("%w: %d 列 vs %d 列", ErrColumnMismatch, len(r.Data[0]), numCols)
		}
		totalRows += len(r.Data) - 1
	}

	combined := make([][]float64, 0, totalRows)
	headerCopy := make([]float64, numCols)
	copy(headerCopy, first.Data[0])
	combined = append(combined, headerCopy)

	for _, r := range sorted {
		for _, row := range r.Data[1:] {
			rowCopy := make([]float64, len(row))
			copy(rowCopy, row)
			combined = append(combined, rowCopy)
		}
	}

	return &Result{Data: combined, StartTime: first.StartTime}, nil
}
