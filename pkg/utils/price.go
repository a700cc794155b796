package utils

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ==================== 价格处理 ====================

// NormalizePrice 将前端传入的价格（数字或字符串）规范为数值
// 字符串形式先清洗再解析，解析失败返回 0 并保留原始串
func NormalizePrice(v interface{}) (amount float64, raw string) {
	switch val := v.(type) {
	case string:
		raw = SanitizeString(val)
		cleaned := strings.TrimSpace(strings.TrimPrefix(raw, "$"))
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if f, err := cast.ToFloat64E(cleaned); err == nil {
			amount = f
		}
		return amount, raw
	default:
		return cast.ToFloat64(v), ""
	}
}

// FormatDisplayPrice 规范价格 -> 展示串，单向转换
// 展示串永远不会被反向解析回数值
func FormatDisplayPrice(amount float64) string {
	return "U$S " + strconv.FormatFloat(amount, 'f', -1, 64)
}
