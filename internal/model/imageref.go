package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ==================== 图片引用 ====================

// Variant 尺寸标签
const (
	VariantW320  = "w320"
	VariantW640  = "w640"
	VariantW1024 = "w1024"
)

// ImageRef 图片引用
// 历史数据里既有裸 URL 字符串也有结构化对象，反序列化时统一收进同一个类型，
// 取展示地址只走 Resolve 一条路径
type ImageRef struct {
	URL          string            `json:"url,omitempty"`
	Path         string            `json:"path,omitempty"`
	Name         string            `json:"name,omitempty"`
	OriginalName string            `json:"originalName,omitempty"`
	PublicURL    string            `json:"publicUrl,omitempty"`
	Variants     map[string]string `json:"variants,omitempty"`

	// plain 标记该引用来自裸字符串，序列化时原样写回
	plain bool
}

// PlainImageRef 由裸 URL 构造
func PlainImageRef(url string) ImageRef {
	return ImageRef{URL: url, plain: true}
}

// Resolve 提取展示 URL
// 顺序：指定 variant -> url -> publicUrl -> path
func (r ImageRef) Resolve(variant string) string {
	if variant != "" && r.Variants != nil {
		if u, ok := r.Variants[variant]; ok && u != "" {
			return u
		}
	}
	if r.URL != "" {
		return r.URL
	}
	if r.PublicURL != "" {
		return r.PublicURL
	}
	return r.Path
}

// IsZero 空引用判定
func (r ImageRef) IsZero() bool {
	return r.URL == "" && r.PublicURL == "" && r.Path == ""
}

func (r *ImageRef) UnmarshalJSON(b []byte) error {
	// 裸字符串形式
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = PlainImageRef(s)
		return nil
	}

	type alias ImageRef
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return fmt.Errorf("图片引用格式不合法: %w", err)
	}
	*r = ImageRef(a)
	return nil
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	if r.plain {
		return json.Marshal(r.URL)
	}
	type alias ImageRef
	return json.Marshal(alias(r))
}

// ==================== GORM 列类型 ====================

// ImageRefList 商品图片列表，首张为封面，按 JSON 存库
type ImageRefList []ImageRef

func (l ImageRefList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageRefList{}
	}
	return json.Marshal(l)
}

func (l *ImageRefList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageRefList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("images 列类型不支持: %T", value)
	}

	if len(data) == 0 {
		*l = ImageRefList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// URLs 投影用：拍平成裸 URL 列表
func (l ImageRefList) URLs() []string {
	out := make([]string, 0, len(l))
	for _, r := range l {
		if u := r.Resolve(""); u != "" {
			out = append(out, u)
		}
	}
	return out
}
