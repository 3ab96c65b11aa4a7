package analyzer

import (
	"fmt"

	"pamguide/internal/types"
)

// SystemSensitivityDB 根据配置计算系统灵敏度修正值 S (dB)
// 纯配置函数，与信号数据无关；未启用校准时返回 0
//
// 空气环境下麦克风灵敏度先减去 120 dB，把 dB re 1 V/Pa 换算为 dB re 1 V/µPa
// TS 模式中 adc_vpeak 只做正数校验，不参与 S 的计算
// （原始物理模型含 20*log10(1/vADC) 归一化项，这里沿用已有的简化行为）
func SystemSensitivityDB(cfg *types.AnalysisConfig) (float64, error) {
	if !cfg.Calibrated {
		return 0.0, nil
	}

	if cfg.CalibrationType == "" {
		return 0, &MissingCalibrationFieldError{Field: "calibration_type"}
	}

	// 空气环境的参考声压换算
	var mh *float64
	if cfg.MicHydroSensitivity != nil {
		v := *cfg.MicHydroSensitivity
		if cfg.Environment == types.EnvironmentAir {
			v -= 120.0
		}
		mh = &v
	}

	switch cfg.CalibrationType {
	case types.CalibrationTS:
		// S = Mh + G
		if mh == nil {
			return 0, &MissingCalibrationFieldError{Field: "mic_hydro_sensitivity"}
		}
		if cfg.PreampGain == nil {
			return 0, &MissingCalibrationFieldError{Field: "preamp_gain"}
		}
		if cfg.ADCVpeak == nil {
			return 0, &MissingCalibrationFieldError{Field: "adc_vpeak"}
		}
		if *cfg.ADCVpeak <= 0 {
			return 0, fmt.Errorf("adc_vpeak 必须为正数，当前值: %g", *cfg.ADCVpeak)
		}
		return *mh + *cfg.PreampGain, nil

	case types.CalibrationEE:
		// S = Si (端到端灵敏度)
		if cfg.SystemSensitivity == nil {
			return 0, &MissingCalibrationFieldError{Field: "system_sensitivity"}
		}
		return *cfg.SystemSensitivity, nil

	case types.CalibrationRC:
		// S = Si + Mh
		if cfg.SystemSensitivity == nil {
			return 0, &MissingCalibrationFieldError{Field: "system_sensitivity"}
		}
		if mh == nil {
			return 0, &MissingCalibrationFieldError{Field: "mic_hydro_sensitivity"}
		}
		return *cfg.SystemSensitivity + *mh, nil

	default:
		return 0, fmt.Errorf("无效的校准方式: %q", cfg.CalibrationType)
	}
}
