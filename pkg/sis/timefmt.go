package sis

import (
	"fmt"
	"strings"
	"time"
)

// DisplayTimeLayout 规整后的 12 小时制时间格式，如 "01:00 PM"
const DisplayTimeLayout = "03:04 PM"

const rawTimeLayout = "15.04.05.000000"

// NormalizeMeetingTime 将 "13.00.00.000000-05:00" 转为 "01:00 PM"
// 末尾 6 个字符为时区偏移，直接丢弃；空串原样返回
func NormalizeMeetingTime(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if len(raw) <= 6 {
		return "", fmt.Errorf("无法解析上课时间 %q", raw)
	}
	t, err := time.Parse(rawTimeLayout, strings.TrimSpace(raw[:len(raw)-6]))
	if err != nil {
		return "", fmt.Errorf("无法解析上课时间 %q: %w", raw, err)
	}
	return t.Format(DisplayTimeLayout), nil
}
