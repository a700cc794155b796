package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"guitarshop_dev_v1_202609/internal/config"
	"guitarshop_dev_v1_202609/internal/model"
)

// ==================== 本地存储 (开发测试用) ====================

// LocalProvider 本地磁盘后端
type LocalProvider struct {
	basePath string
	baseURL  string
}

func NewLocalProvider(cfg *config.StorageConfig) (*LocalProvider, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}
	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}

	return &LocalProvider{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalProvider) Upload(ctx context.Context, data []byte, filename string, contentType string) (*model.ImageRef, error) {
	key := generateKey("", filename)

	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("写入本地文件失败: %v", err)
	}

	url := s.baseURL + "/" + key
	return &model.ImageRef{
		URL:          url,
		Path:         key,
		Name:         filepath.Base(key),
		OriginalName: filename,
		Variants:     variantURLs(url),
	}, nil
}

func (s *LocalProvider) UploadFromURL(ctx context.Context, sourceURL string, filename string) (*model.ImageRef, error) {
	data, contentType, err := download(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	return s.Upload(ctx, data, filename, contentType)
}

func (s *LocalProvider) Delete(ctx context.Context, path string) error {
	key := strings.TrimPrefix(path, "/")
	if key == "" {
		return fmt.Errorf("无法解析文件路径")
	}
	return os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
}

func (s *LocalProvider) GetObject(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.basePath, filepath.FromSlash(key)))
}

func (s *LocalProvider) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
