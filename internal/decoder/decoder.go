package decoder

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// AudioData 解码后的单声道音频数据，采样值已归一化到 [-1, 1]
type AudioData struct {
	Format     string        // 格式名称 (WAV, FLAC)
	Samples    []float64     // 归一化采样数据
	SampleRate int           // 采样率 (Hz)
	BitDepth   int           // 位深度
	Duration   time.Duration // 时长
}

// AudioDecoder 音频解码器接口
type AudioDecoder interface {
	Decode(filePath string) (*AudioData, error)
	SupportedFormats() []string
}

// DecoderRegistry 解码器注册表
type DecoderRegistry struct {
	decoders map[string]AudioDecoder
}

// NewDecoderRegistry 创建新的解码器注册表
func NewDecoderRegistry() *DecoderRegistry {
	registry := &DecoderRegistry{
		decoders: make(map[string]AudioDecoder),
	}

	// 注册支持的解码器
	registry.Register(&WAVDecoder{})
	registry.Register(&FLACDecoder{})

	return registry
}

// Register 注册解码器
func (r *DecoderRegistry) Register(decoder AudioDecoder) {
	for _, format := range decoder.SupportedFormats() {
		r.decoders[strings.ToLower(format)] = decoder
	}
}

// GetDecoder 根据文件扩展名获取解码器
func (r *DecoderRegistry) GetDecoder(filePath string) (AudioDecoder, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return nil, fmt.Errorf("无法确定文件格式: %s", filePath)
	}

	// 移除点号
	ext = ext[1:]

	decoder, exists := r.decoders[ext]
	if !exists {
		return nil, fmt.Errorf("不支持的音频格式: %s", ext)
	}

	return decoder, nil
}

// DecodeFile 解码音频文件，返回归一化的单声道采样数据
func (r *DecoderRegistry) DecodeFile(filePath string) (*AudioData, error) {
	decoder, err := r.GetDecoder(filePath)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(filePath)
}

// Supported 判断文件扩展名是否有对应的解码器
func (r *DecoderRegistry) Supported(filePath string) bool {
	_, err := r.GetDecoder(filePath)
	return err == nil
}
