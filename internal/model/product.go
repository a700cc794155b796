package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== 商品 ====================

// SpecsMap 商品规格键值对（弦数、琴体木材一类的自由字段）
type SpecsMap map[string]string

func (m SpecsMap) Value() (driver.Value, error) {
	if m == nil {
		m = SpecsMap{}
	}
	return json.Marshal(m)
}

func (m *SpecsMap) Scan(value interface{}) error {
	if value == nil {
		*m = SpecsMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("specs 列类型不支持: %T", value)
	}
	if len(data) == 0 {
		*m = SpecsMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Product 商品规范行（事实来源）
type Product struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Specs       SpecsMap     `gorm:"type:jsonb" json:"specs"`
	Price       float64      `gorm:"default:0" json:"price"`
	PriceRaw    string       `gorm:"size:64" json:"price_raw,omitempty"` // 前端传字符串时保留原始串
	Images      ImageRefList `gorm:"type:jsonb" json:"images"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeCreate 入库前分配 ID
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// CoverURL 封面图地址（首张）
func (p *Product) CoverURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Resolve("")
}
