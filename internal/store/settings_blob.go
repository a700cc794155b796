package store

import (
	"context"
	"encoding/json"
	"fmt"

	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/storage"
)

// ==================== 对象存储后端（次后端） ====================

// BlobBackend 对象存储后端，设置 JSON 存在固定 key 下
type BlobBackend struct {
	provider storage.Provider
	key      string
}

// NewBlobBackend 创建对象存储后端
func NewBlobBackend(provider storage.Provider, key string) *BlobBackend {
	return &BlobBackend{provider: provider, key: key}
}

func (b *BlobBackend) Load(ctx context.Context) (model.Settings, error) {
	data, err := b.provider.GetObject(ctx, b.key)
	if err != nil {
		return model.Settings{}, fmt.Errorf("读取设置对象失败: %w", err)
	}

	var s model.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Settings{}, fmt.Errorf("设置对象内容不合法: %w", err)
	}
	s.Normalize()
	return s, nil
}

func (b *BlobBackend) Save(ctx context.Context, s model.Settings) error {
	s.Normalize()
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.provider.PutObject(ctx, b.key, data, "application/json")
}
