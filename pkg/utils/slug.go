package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify 根据标题生成确定性 slug
// 规则：小写 + 去变音符号 + 非字母数字折叠为连字符
// 对已经合法的 slug 再次调用结果不变（幂等）
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// SlugOrTimestamp 标题为空时退化为时间戳 slug
func SlugOrTimestamp(title string) string {
	if s := Slugify(title); s != "" {
		return s
	}
	return fmt.Sprintf("item-%d", time.Now().UnixMilli())
}
