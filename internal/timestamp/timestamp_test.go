package timestamp

import (
	"testing"
	"time"
)

// TestParseFromFilename 按约定的文件名格式和 Go 时间布局解析起始时间
func TestParseFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		layout  string
		want    time.Time
		wantErr bool
	}{
		{
			name:   "标准格式",
			path:   "/data/AMAR173.20230601T120000Z.wav",
			layout: "20060102T150405Z",
			want:   time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:   "紧凑格式",
			path:   "rec.20230601-093015.flac",
			layout: "20060102-150405",
			want:   time.Date(2023, 6, 1, 9, 30, 15, 0, time.UTC),
		},
		{
			name:    "没有时间戳部分",
			path:    "recording.wav",
			layout:  "20060102T150405Z",
			wantErr: true,
		},
		{
			name:    "时间戳与布局不匹配",
			path:    "rec.notadate.wav",
			layout:  "20060102T150405Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFromFilename(tt.path, tt.layout)
			if tt.wantErr {
				if err == nil {
					t.Error("期望返回错误")
				}
				return
			}
			if err != nil {
				t.Fatalf("意外错误: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("解析结果 = %v, 期望 %v", got, tt.want)
			}
		})
	}
}
