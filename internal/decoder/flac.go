package decoder

import (
	"fmt"
	"os"
	"time"

	"github.com/mewkiz/flac"
)

// FLACDecoder FLAC格式解码器
type FLACDecoder struct{}

// SupportedFormats 返回支持的格式
func (d *FLACDecoder) SupportedFormats() []string {
	return []string{"flac"}
}

// Decode 解码FLAC文件
// 只接受单声道文件，采样值按位深度归一化到 [-1, 1]
func (d *FLACDecoder) Decode(filePath string) (*AudioData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开FLAC文件失败: %w", err)
	}
	defer file.Close()

	stream, err := flac.New(file)
	if err != nil {
		return nil, fmt.Errorf("解析FLAC文件失败: %w", err)
	}

	info := stream.Info
	if info == nil {
		return nil, fmt.Errorf("无法读取FLAC信息: %s", filePath)
	}

	if info.NChannels != 1 {
		return nil, fmt.Errorf("不支持的声道数: %d，目前只支持单声道文件", info.NChannels)
	}

	bitDepth := int(info.BitsPerSample)
	sampleRate := int(info.SampleRate)
	maxVal := float64(int64(1) << uint(bitDepth-1))

	samples := make([]float64, 0, info.NSamples)

	// 逐帧读取所有音频数据
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			break
		}

		for _, sample := range frame.Subframes[0].Samples {
			v := float64(sample) / maxVal
			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}
			samples = append(samples, v)
		}
	}

	duration := time.Duration(float64(len(samples)) / float64(sampleRate) * float64(time.Second))

	return &AudioData{
		Format:     "FLAC",
		Samples:    samples,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Duration:   duration,
	}, nil
}
