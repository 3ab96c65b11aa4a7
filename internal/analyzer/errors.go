package analyzer

import (
	"errors"
	"fmt"
)

// 核心分析错误，对单个文件都是终止性的，批量模式下由调用方捕获并跳过
var (
	// ErrInvalidWindow 窗长度为零或超过信号长度
	ErrInvalidWindow = errors.New("窗长度为零或超过信号长度")
	// ErrZeroStep 重叠设置使步长取整后为零
	ErrZeroStep = errors.New("重叠设置导致步长为零")
	// ErrSignalTooShort 信号太短，无法产生任何分析片段
	ErrSignalTooShort = errors.New("信号太短，无法产生任何分析片段")
	// ErrInvalidFrequencyRange 频率范围映射到频点后低频索引超过高频索引
	ErrInvalidFrequencyRange = errors.New("低频截止映射到频点后超过高频截止")
	// ErrColumnMismatch 文件之间频率列数不一致，无法拼接PSD结果
	ErrColumnMismatch = errors.New("文件之间频率列数不一致，无法拼接PSD结果")
)

// MissingCalibrationFieldError 选定校准方式缺少必需字段
type MissingCalibrationFieldError struct {
	Field string
}

func (e *MissingCalibrationFieldError) Error() string {
	return fmt.Sprintf("校准配置缺少必需字段: %s", e.Field)
}
