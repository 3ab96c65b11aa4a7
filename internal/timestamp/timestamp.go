package timestamp

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ParseFromFilename 从文件名中解析录音的绝对起始时间
// 文件名约定为 PREFIX.时间戳.扩展名，取文件主干中第一个 '.' 之后的部分，
// 用 Go 时间布局 layout 解析（例如 20060102T150405Z）
func ParseFromFilename(path string, layout string) (time.Time, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.SplitN(stem, ".", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("无法从文件名中提取时间戳部分: %s", stem)
	}

	t, err := time.Parse(layout, parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("时间戳解析失败 (提取到 %q，布局 %q): %w", parts[1], layout, err)
	}

	return t, nil
}
