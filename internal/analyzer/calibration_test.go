package analyzer

import (
	"errors"
	"testing"

	"pamguide/internal/types"
)

func f64(v float64) *float64 { return &v }

// TestSystemSensitivityDisabled 未启用校准时 S 恒为 0
func TestSystemSensitivityDisabled(t *testing.T) {
	cfg := &types.AnalysisConfig{Calibrated: false}
	s, err := SystemSensitivityDB(cfg)
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if s != 0.0 {
		t.Errorf("S = %v, 期望 0", s)
	}
}

// TestSystemSensitivityModes 各校准方式的灵敏度公式
func TestSystemSensitivityModes(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.AnalysisConfig
		want float64
	}{
		{
			// TS: S = Mh + G，adc_vpeak 只校验不参与计算
			name: "TS水下",
			cfg: types.AnalysisConfig{
				Calibrated:          true,
				CalibrationType:     types.CalibrationTS,
				Environment:         types.EnvironmentWater,
				MicHydroSensitivity: f64(-180),
				PreampGain:          f64(10),
				ADCVpeak:            f64(2.0),
			},
			want: -170,
		},
		{
			// 空气环境先把 Mh 换算 -120 dB
			name: "TS空气",
			cfg: types.AnalysisConfig{
				Calibrated:          true,
				CalibrationType:     types.CalibrationTS,
				Environment:         types.EnvironmentAir,
				MicHydroSensitivity: f64(-60),
				PreampGain:          f64(10),
				ADCVpeak:            f64(1.0),
			},
			want: -170,
		},
		{
			// EE: S = Si，其他字段即使存在也不影响
			name: "EE",
			cfg: types.AnalysisConfig{
				Calibrated:          true,
				CalibrationType:     types.CalibrationEE,
				Environment:         types.EnvironmentWater,
				SystemSensitivity:   f64(-150),
				MicHydroSensitivity: f64(-999),
				PreampGain:          f64(999),
			},
			want: -150,
		},
		{
			// RC: S = Si + Mh
			name: "RC",
			cfg: types.AnalysisConfig{
				Calibrated:          true,
				CalibrationType:     types.CalibrationRC,
				Environment:         types.EnvironmentWater,
				SystemSensitivity:   f64(-150),
				MicHydroSensitivity: f64(-180),
			},
			want: -330,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SystemSensitivityDB(&tt.cfg)
			if err != nil {
				t.Fatalf("意外错误: %v", err)
			}
			if s != tt.want {
				t.Errorf("S = %v, 期望 %v", s, tt.want)
			}
		})
	}
}

// TestSystemSensitivityMissingFields 缺少必需字段时报告字段名
func TestSystemSensitivityMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.AnalysisConfig
		wantField string
	}{
		{
			name: "TS缺麦克风灵敏度",
			cfg: types.AnalysisConfig{
				Calibrated:      true,
				CalibrationType: types.CalibrationTS,
				PreampGain:      f64(10),
				ADCVpeak:        f64(1.0),
			},
			wantField: "mic_hydro_sensitivity",
		},
		{
			name: "TS缺前置增益",
			cfg: types.AnalysisConfig{
				Calibrated:          true,
				CalibrationType:     types.CalibrationTS,
				MicHydroSensitivity: f64(-180),
				ADCVpeak:            f64(1.0),
			},
			wantField: "preamp_gain",
		},
		{
			name: "TS缺ADC峰值电压",
			cfg: types.AnalysisConfig{
				Calibrated:          true,
				CalibrationType:     types.CalibrationTS,
				MicHydroSensitivity: f64(-180),
				PreampGain:          f64(10),
			},
			wantField: "adc_vpeak",
		},
		{
			name: "EE缺系统灵敏度",
			cfg: types.AnalysisConfig{
				Calibrated:      true,
				CalibrationType: types.CalibrationEE,
			},
			wantField: "system_sensitivity",
		},
		{
			name: "RC缺麦克风灵敏度",
			cfg: types.AnalysisConfig{
				Calibrated:        true,
				CalibrationType:   types.CalibrationRC,
				SystemSensitivity: f64(-150),
			},
			wantField: "mic_hydro_sensitivity",
		},
		{
			name:      "未指定校准方式",
			cfg:       types.AnalysisConfig{Calibrated: true},
			wantField: "calibration_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SystemSensitivityDB(&tt.cfg)
			var missing *MissingCalibrationFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("期望 MissingCalibrationFieldError, 实际 %v", err)
			}
			if missing.Field != tt.wantField {
				t.Errorf("缺失字段 = %q, 期望 %q", missing.Field, tt.wantField)
			}
		})
	}
}

// TestSystemSensitivityInvalidVpeak adc_vpeak 必须为正数
func TestSystemSensitivityInvalidVpeak(t *testing.T) {
	cfg := &types.AnalysisConfig{
		Calibrated:          true,
		CalibrationType:     types.CalibrationTS,
		Environment:         types.EnvironmentWater,
		MicHydroSensitivity: f64(-180),
		PreampGain:          f64(10),
		ADCVpeak:            f64(0),
	}
	if _, err := SystemSensitivityDB(cfg); err == nil {
		t.Error("adc_vpeak=0 时期望返回错误")
	}
}
