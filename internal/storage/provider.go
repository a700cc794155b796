package storage

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"guitarshop_dev_v1_202609/internal/config"
	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/pkg/utils"
)

// ==================== 接口定义 ====================

// Provider 对象存储提供者接口
type Provider interface {
	// Upload 上传文件，返回图片引用（含尺寸变体 URL）
	Upload(ctx context.Context, data []byte, filename string, contentType string) (*model.ImageRef, error)

	// UploadFromURL 从 URL 下载并上传
	UploadFromURL(ctx context.Context, sourceURL string, filename string) (*model.ImageRef, error)

	// Delete 按对象路径删除
	Delete(ctx context.Context, path string) error

	// GetObject / PutObject 固定 key 的原始对象读写（设置 JSON 用）
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}

// ==================== 工厂方法 ====================

// NewProvider 按配置创建存储提供者
func NewProvider(cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Provider(cfg)
	case "local":
		return NewLocalProvider(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== 工具函数 ====================

// generateKey 生成日期分区的对象 key
func generateKey(basePath, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	if basePath != "" {
		return fmt.Sprintf("%s/%s/%s", basePath, datePath, newFilename)
	}
	return fmt.Sprintf("%s/%s", datePath, newFilename)
}

// variantURLs 按 key 后缀约定派生尺寸变体 URL
// 实际缩放由图片处理服务按后缀完成，这里只负责地址
func variantURLs(publicURL string) map[string]string {
	ext := filepath.Ext(publicURL)
	base := publicURL[:len(publicURL)-len(ext)]

	out := make(map[string]string, 3)
	for _, v := range []string{model.VariantW320, model.VariantW640, model.VariantW1024} {
		out[v] = fmt.Sprintf("%s_%s%s", base, v, ext)
	}
	return out
}

func detectContentType(data []byte) string {
	return http.DetectContentType(data)
}

// download 给 UploadFromURL 共用的下载入口
func download(ctx context.Context, url string) ([]byte, string, error) {
	return utils.DownloadImage(ctx, url)
}
