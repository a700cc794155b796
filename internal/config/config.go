package config

import (
	"time"

	"github.com/spf13/viper"
)

// ==================== 应用配置 ====================

// Config 应用配置，启动时一次性解析
// 全部来自环境变量，部署平台（serverless）只暴露 env
type Config struct {
	// 服务
	ServerPort string
	DataDir    string // 本地设置文件 / 商品投影文件所在目录

	// 数据库
	DatabaseDSN string

	// 鉴权
	OwnerEmail string // 店主唯一信任点，精确匹配
	JWTSecret  string

	// 请求防护
	AllowedOrigin   string // 生产环境允许的跨域来源 host
	RateLimitMax    int    // 每窗口每 IP 最大请求数
	RateLimitWindow time.Duration

	// 设置覆盖（运维逃生通道，默认关闭）
	OverridesEnabled      bool
	HeroImageOverride     string
	FeaturedOrderOverride string // 逗号分隔商品 ID
	FeaturedMainOverride  string // JSON 对象串

	// 存储
	Storage StorageConfig
}

// StorageConfig 对象存储配置
type StorageConfig struct {
	Provider    string // "s3" | "local"
	Bucket      string
	Region      string
	AccessKey   string
	SecretKey   string
	Endpoint    string // 自定义端点（MinIO / R2 等 S3 兼容服务）
	CDNDomain   string
	BasePath    string
	SettingsKey string // 设置对象的固定 key
}

// Load 读取环境变量并构造配置
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("STORAGE_PROVIDER", "s3")
	v.SetDefault("STORAGE_BASE_PATH", "guitarshop")
	v.SetDefault("SETTINGS_OBJECT_KEY", "guitarshop/settings.json")

	return &Config{
		ServerPort:  v.GetString("SERVER_PORT"),
		DataDir:     v.GetString("DATA_DIR"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		OwnerEmail:  v.GetString("OWNER_EMAIL"),
		JWTSecret:   v.GetString("JWT_SECRET"),

		AllowedOrigin:   v.GetString("ALLOWED_ORIGIN"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,

		OverridesEnabled:      v.GetBool("SETTINGS_OVERRIDES_ENABLED"),
		HeroImageOverride:     v.GetString("SETTINGS_HERO_IMAGE"),
		FeaturedOrderOverride: v.GetString("SETTINGS_FEATURED_ORDER"),
		FeaturedMainOverride:  v.GetString("SETTINGS_FEATURED_MAIN"),

		Storage: StorageConfig{
			Provider:    v.GetString("STORAGE_PROVIDER"),
			Bucket:      v.GetString("AWS_BUCKET"),
			Region:      v.GetString("AWS_REGION"),
			AccessKey:   v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey:   v.GetString("AWS_SECRET_ACCESS_KEY"),
			Endpoint:    v.GetString("STORAGE_ENDPOINT"),
			CDNDomain:   v.GetString("AWS_CDN_DOMAIN"),
			BasePath:    v.GetString("STORAGE_BASE_PATH"),
			SettingsKey: v.GetString("SETTINGS_OBJECT_KEY"),
		},
	}
}
