package model

// ==================== 店铺设置 ====================

// SettingsID 设置单例的固定标识
const SettingsID = "shop-settings"

// MaxFeatured 首页精选商品数量上限
const MaxFeatured = 3

// Settings 店铺设置单例
// 三个后端（本地文件 / 对象存储 / 环境变量覆盖）共用这一个 JSON 形状
type Settings struct {
	// Featured 精选商品 ID 列表，插入顺序即展示顺序
	Featured []string `json:"featured"`
	// FeaturedMain 精选商品 -> 展示主图 的覆盖映射
	FeaturedMain map[string]string `json:"featuredMain"`
	// HeroImage 首页横幅图
	HeroImage string `json:"heroImage"`
}

// DefaultSettings 两个后端都不可用时的兜底值
func DefaultSettings() Settings {
	return Settings{
		Featured:     []string{},
		FeaturedMain: map[string]string{},
		HeroImage:    "",
	}
}

// Clone 深拷贝，避免调用方共享内部 map/slice
func (s Settings) Clone() Settings {
	out := Settings{
		Featured:     make([]string, len(s.Featured)),
		FeaturedMain: make(map[string]string, len(s.FeaturedMain)),
		HeroImage:    s.HeroImage,
	}
	copy(out.Featured, s.Featured)
	for k, v := range s.FeaturedMain {
		out.FeaturedMain[k] = v
	}
	return out
}

// Normalize 补齐 nil 字段，保证序列化出固定形状
func (s *Settings) Normalize() {
	if s.Featured == nil {
		s.Featured = []string{}
	}
	if s.FeaturedMain == nil {
		s.FeaturedMain = map[string]string{}
	}
}
