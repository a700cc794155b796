package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ==================== 商品投影列表 ====================

// projectionFileName 数据目录下的投影文件名
// 静态站点构建直接读这个文件，不依赖数据库
const projectionFileName = "products.json"

// ProjectionEntry 商品的去规范化投影条目
type ProjectionEntry struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"` // 展示串，单向派生自规范行
	Images      []string `json:"images"`
}

// Matches 身份匹配，优先级 id > slug > title
func (e ProjectionEntry) Matches(id, slug, title string) bool {
	if id != "" && e.ID == id {
		return true
	}
	if slug != "" && e.Slug == slug {
		return true
	}
	if title != "" && e.Title == title {
		return true
	}
	return false
}

// ProjectionStore 投影列表的文件存储
// 读-改-写全程持互斥锁，单进程内并发 create/delete 不会丢更新
type ProjectionStore struct {
	mu   sync.Mutex
	path string
}

// NewProjectionStore 创建投影存储
func NewProjectionStore(dataDir string) *ProjectionStore {
	return &ProjectionStore{path: filepath.Join(dataDir, projectionFileName)}
}

// List 读取全部条目，文件缺失视为空列表
func (p *ProjectionStore) List() ([]ProjectionEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load()
}

// Prepend 头插新条目（最新在前）
func (p *ProjectionStore) Prepend(e ProjectionEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries, err := p.load()
	if err != nil {
		return err
	}
	entries = append([]ProjectionEntry{e}, entries...)
	return p.save(entries)
}

// UpdateMatch 定位匹配条目并原地覆盖
// 没有匹配时列表保持不动，不做 insert-on-update
func (p *ProjectionStore) UpdateMatch(e ProjectionEntry) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries, err := p.load()
	if err != nil {
		return false, err
	}

	for i := range entries {
		if entries[i].Matches(e.ID, e.Slug, e.Title) {
			entries[i] = e
			return true, p.save(entries)
		}
	}
	return false, nil
}

// RemoveMatches 单趟移除所有命中 id 或 slug 或 title 的条目
func (p *ProjectionStore) RemoveMatches(id, slug, title string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries, err := p.load()
	if err != nil {
		return 0, err
	}

	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if e.Matches(id, slug, title) {
			removed++
			continue
		}
		kept = append(kept, e)
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, p.save(kept)
}

// Replace 整体替换（夜间重建用）
func (p *ProjectionStore) Replace(entries []ProjectionEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.save(entries)
}

// ==================== 内部读写 ====================

func (p *ProjectionStore) load() ([]ProjectionEntry, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return []ProjectionEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取投影文件失败: %w", err)
	}

	var entries []ProjectionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("投影文件内容不合法: %w", err)
	}
	return entries, nil
}

func (p *ProjectionStore) save(entries []ProjectionEntry) error {
	if entries == nil {
		entries = []ProjectionEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
