package analyzer

import (
	"github.com/mjibson/go-dsp/fft"
)

// SingleSidedPowerSpectrum 计算加窗片段的单边线性功率谱
// 取FFT结果的第 1..N/2 个频点（跳过直流分量），P[k] = |X[k]|² / N² * 2
// 乘 2 是把负频率折叠进单边谱；FFT长度任意，不要求 2 的幂
func SingleSidedPowerSpectrum(segment []float64) []float64 {
	n := len(segment)
	spectrum := fft.FFTReal(segment)

	half := n / 2
	nSq := float64(n) * float64(n)
	power := make([]float64, half)

	for k := 1; k <= half; k++ {
		re := real(spectrum[k])
		im := imag(spectrum[k])
		power[k-1] = (re*re + im*im) / nSq * 2.0
	}

	return power
}
