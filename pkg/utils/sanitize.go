package utils

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// ==================== 输入清洗 ====================

var (
	// script 块连同内容一起去掉
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	// 其余残留标签只去壳
	tagRe = regexp.MustCompile(`(?s)<[^>]*>`)
	// 内联协议注入
	jsProtoRe = regexp.MustCompile(`(?i)javascript\s*:`)
)

// SanitizeString 清洗来自管理端的任意字符串值
// 去除 script 块、HTML 标签与 javascript: 协议，首尾空白裁剪
func SanitizeString(v interface{}) string {
	s := cast.ToString(v)
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = jsProtoRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SanitizeStrings 对切片逐项清洗，丢弃清洗后为空的项
func SanitizeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := SanitizeString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
