package analyzer

import (
	"math"

	"pamguide/internal/types"
)

// GenerateScaledWindow 生成指定类型和长度的分析窗，返回窗系数和DC归一化常数 alpha
// 每个系数都已除以 alpha，下游直接使用缩放后的窗
// 调用方保证 n >= 1
func GenerateScaledWindow(kind types.WindowType, n int) ([]float64, float64) {
	window := make([]float64, n)
	var alpha float64

	switch kind {
	case types.WindowRectangular:
		alpha = 1.0
		for i := range window {
			window[i] = 1.0
		}
	case types.WindowHamming:
		alpha = 0.54
		for i := range window {
			window[i] = alpha - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n))
		}
	case types.WindowBlackman:
		alpha = 0.42
		for i := range window {
			window[i] = alpha - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n)) +
				0.08*math.Cos(4*math.Pi*float64(i)/float64(n))
		}
	default: // Hann
		alpha = 0.5
		for i := range window {
			window[i] = alpha - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
		}
	}

	// 按 alpha 缩放
	for i := range window {
		window[i] /= alpha
	}

	return window, alpha
}

// NoisePowerBandwidth 计算窗的噪声功率带宽 B = (1/N) * Σ w[n]²
// 输入必须是已经按 alpha 缩放后的窗
func NoisePowerBandwidth(window []float64) float64 {
	sumSq := 0.0
	for _, w := range window {
		sumSq += w * w
	}
	return sumSq / float64(len(window))
}
