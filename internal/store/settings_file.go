package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"guitarshop_dev_v1_202609/internal/model"
)

// ==================== 设置后端接口 ====================

// SettingsBackend 设置对象的单个持久化后端
type SettingsBackend interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, s model.Settings) error
}

// ==================== 本地文件后端（主后端） ====================

// settingsFileName 数据目录下的设置文件名
const settingsFileName = "settings.json"

// FileBackend 本地文件后端
// serverless 部署下文件系统可能只读，写入失败由上层回退到对象存储
type FileBackend struct {
	path string
}

// NewFileBackend 创建本地文件后端
func NewFileBackend(dataDir string) *FileBackend {
	return &FileBackend{path: filepath.Join(dataDir, settingsFileName)}
}

func (b *FileBackend) Load(ctx context.Context) (model.Settings, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return model.Settings{}, fmt.Errorf("读取设置文件失败: %w", err)
	}

	var s model.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Settings{}, fmt.Errorf("设置文件内容不合法: %w", err)
	}
	s.Normalize()
	return s, nil
}

func (b *FileBackend) Save(ctx context.Context, s model.Settings) error {
	s.Normalize()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("写入设置文件失败: %w", err)
	}
	return nil
}
