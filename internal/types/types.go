package types

import (
	"fmt"
	"strings"
)

// AnalysisType 分析类型
type AnalysisType string

const (
	AnalysisPSD       AnalysisType = "psd"       // 功率谱密度
	AnalysisBroadband AnalysisType = "broadband" // 宽带声级
)

// Environment 测量环境，决定参考声压
type Environment string

const (
	EnvironmentAir   Environment = "air" // 空气 (参考声压 20 µPa)
	EnvironmentWater Environment = "wat" // 水下 (参考声压 1 µPa)
)

// ReferencePressure 返回环境对应的参考声压 (µPa)
func (e Environment) ReferencePressure() float64 {
	if e == EnvironmentAir {
		return 20.0
	}
	return 1.0
}

// CalibrationType 校准方式
type CalibrationType string

const (
	CalibrationTS CalibrationType = "TS" // 换能器规格 (Transducer Specs)
	CalibrationEE CalibrationType = "EE" // 端到端 (End-to-End)
	CalibrationRC CalibrationType = "RC" // 录音机+水听器/麦克风
)

// WindowType 窗函数类型
type WindowType string

const (
	WindowHann        WindowType = "hann"
	WindowHamming     WindowType = "hamming"
	WindowBlackman    WindowType = "blackman"
	WindowRectangular WindowType = "rectangular"
)

// Name 返回窗函数的显示名称，用于输出文件名
func (w WindowType) Name() string {
	if w == "" {
		return ""
	}
	s := string(w)
	return strings.ToUpper(s[:1]) + s[1:]
}

// WindowUnit 窗长度的单位
type WindowUnit string

const (
	UnitSeconds WindowUnit = "seconds"
	UnitSamples WindowUnit = "samples"
)

// AnalysisConfig 分析配置，从配置文件加载后在整个流程中只读传递
type AnalysisConfig struct {
	// 输入输出设置
	InputPath                string `mapstructure:"input_path"`
	OutputDir                string `mapstructure:"output_dir"`
	WriteCSV                 bool   `mapstructure:"write_csv"`
	CreateBatchSummaryFile   bool   `mapstructure:"create_batch_summary_file"`
	WriteIndividualBatchCSVs bool   `mapstructure:"write_individual_batch_csvs"`

	// 核心分析设置
	AnalysisType AnalysisType `mapstructure:"analysis_type"`
	Environment  Environment  `mapstructure:"environment"`

	// 校准设置。灵敏度相关字段用指针区分"未填写"和合法的 0 dB
	Calibrated          bool            `mapstructure:"calibrated"`
	CalibrationType     CalibrationType `mapstructure:"calibration_type"`
	MicHydroSensitivity *float64        `mapstructure:"mic_hydro_sensitivity"` // dB re 1 V/µPa (水) 或 1 V/Pa (空气)
	PreampGain          *float64        `mapstructure:"preamp_gain"`           // dB
	ADCVpeak            *float64        `mapstructure:"adc_vpeak"`             // 伏特
	SystemSensitivity   *float64        `mapstructure:"system_sensitivity"`    // dB

	// DFT/窗函数设置
	WindowType        WindowType `mapstructure:"window_type"`
	WindowLength      float64    `mapstructure:"window_length"`
	WindowUnit        WindowUnit `mapstructure:"window_unit"`
	OverlapPercentage float64    `mapstructure:"overlap_percentage"`

	// 频率范围设置
	LowCutoff  float64 `mapstructure:"low_cutoff"`  // Hz
	HighCutoff float64 `mapstructure:"high_cutoff"` // Hz

	// 可选设置
	WelchFactor     int    `mapstructure:"welch_factor"`     // Welch 平均分组因子，0 表示不启用
	TimestampFormat string `mapstructure:"timestamp_format"` // 文件名时间戳的 Go 时间布局，空表示不解析
}

// Normalize 统一配置中枚举值的写法（大小写、别名）
func (c *AnalysisConfig) Normalize() {
	c.AnalysisType = AnalysisType(strings.ToLower(string(c.AnalysisType)))
	c.WindowType = WindowType(strings.ToLower(string(c.WindowType)))
	c.WindowUnit = WindowUnit(strings.ToLower(string(c.WindowUnit)))
	c.CalibrationType = CalibrationType(strings.ToUpper(string(c.CalibrationType)))

	env := strings.ToLower(string(c.Environment))
	if env == "water" {
		env = string(EnvironmentWater)
	}
	c.Environment = Environment(env)
}

// Validate 校验配置的合法性，加载配置后必须调用
func (c *AnalysisConfig) Validate() error {
	switch c.AnalysisType {
	case AnalysisPSD, AnalysisBroadband:
	default:
		return fmt.Errorf("无效的分析类型: %q (支持 psd, broadband)", c.AnalysisType)
	}

	switch c.Environment {
	case EnvironmentAir, EnvironmentWater:
	default:
		return fmt.Errorf("无效的测量环境: %q (支持 air, wat)", c.Environment)
	}

	switch c.WindowType {
	case WindowHann, WindowHamming, WindowBlackman, WindowRectangular:
	default:
		return fmt.Errorf("无效的窗函数类型: %q (支持 hann, hamming, blackman, rectangular)", c.WindowType)
	}

	switch c.WindowUnit {
	case UnitSeconds, UnitSamples:
	default:
		return fmt.Errorf("无效的窗长度单位: %q (支持 seconds, samples)", c.WindowUnit)
	}

	if c.WindowLength <= 0 {
		return fmt.Errorf("窗长度必须大于 0，当前值: %g", c.WindowLength)
	}

	if c.OverlapPercentage < 0 || c.OverlapPercentage >= 100 {
		return fmt.Errorf("重叠百分比必须在 [0, 100) 范围内，当前值: %g", c.OverlapPercentage)
	}

	if c.LowCutoff >= c.HighCutoff {
		return fmt.Errorf("低频截止 (%g Hz) 必须小于高频截止 (%g Hz)", c.LowCutoff, c.HighCutoff)
	}

	if c.WelchFactor != 0 && c.WelchFactor < 2 {
		return fmt.Errorf("Welch 分组因子必须 >= 2，当前值: %d", c.WelchFactor)
	}

	if c.Calibrated {
		if err := c.validateCalibration(); err != nil {
			return err
		}
	}

	return nil
}

// validateCalibration 校验选定校准方式所需的字段
func (c *AnalysisConfig) validateCalibration() error {
	switch c.CalibrationType {
	case CalibrationTS:
		if c.MicHydroSensitivity == nil || c.PreampGain == nil || c.ADCVpeak == nil {
			return fmt.Errorf("TS 校准需要设置 mic_hydro_sensitivity, preamp_gain 和 adc_vpeak")
		}
		if *c.ADCVpeak <= 0 {
			return fmt.Errorf("adc_vpeak 必须为正数，当前值: %g", *c.ADCVpeak)
		}
	case CalibrationEE:
		if c.SystemSensitivity == nil {
			return fmt.Errorf("EE 校准需要设置 system_sensitivity")
		}
	case CalibrationRC:
		if c.MicHydroSensitivity == nil || c.SystemSensitivity == nil {
			return fmt.Errorf("RC 校准需要设置 mic_hydro_sensitivity 和 system_sensitivity")
		}
	case "":
		return fmt.Errorf("calibrated=true 时必须指定 calibration_type")
	default:
		return fmt.Errorf("无效的校准方式: %q (支持 TS, EE, RC)", c.CalibrationType)
	}
	return nil
}
