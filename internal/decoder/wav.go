package decoder

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// WAVDecoder WAV格式解码器
type WAVDecoder struct{}

// SupportedFormats 返回支持的格式
func (d *WAVDecoder) SupportedFormats() []string {
	return []string{"wav"}
}

// Decode 解码WAV文件
// 只接受单声道文件，采样值按位深度归一化到 [-1, 1]
func (d *WAVDecoder) Decode(filePath string) (*AudioData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开WAV文件失败: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("无效的WAV文件: %s", filePath)
	}

	if decoder.NumChans != 1 {
		return nil, fmt.Errorf("不支持的声道数: %d，目前只支持单声道文件", decoder.NumChans)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("读取WAV音频数据失败: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	sampleRate := int(decoder.SampleRate)

	samples := normalizeIntSamples(buf.Data, bitDepth)
	duration := time.Duration(float64(len(samples)) / float64(sampleRate) * float64(time.Second))

	return &AudioData{
		Format:     "WAV",
		Samples:    samples,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Duration:   duration,
	}, nil
}

// normalizeIntSamples 将整型PCM采样按位深度归一化到 [-1, 1]
func normalizeIntSamples(data []int, bitDepth int) []float64 {
	samples := make([]float64, len(data))
	maxVal := float64(int64(1) << uint(bitDepth-1))

	for i, sample := range data {
		v := float64(sample) / maxVal
		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}
		samples[i] = v
	}

	return samples
}
