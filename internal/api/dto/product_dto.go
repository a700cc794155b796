package dto

import (
	"encoding/json"

	"guitarshop_dev_v1_202609/internal/model"
)

// ==================== 请求 DTO ====================

// CreateProductReq 创建商品请求
type CreateProductReq struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Specs       map[string]string  `json:"specs"`
	Price       json.RawMessage    `json:"price"` // 数字或字符串，服务层规范化
	Images      model.ImageRefList `json:"images"`
}

// UpdateProductReq 更新商品请求，nil 字段不触碰
type UpdateProductReq struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Specs       *map[string]string  `json:"specs,omitempty"`
	Price       json.RawMessage     `json:"price,omitempty"`
	Images      *model.ImageRefList `json:"images,omitempty"`
}

// DeleteProductReq 删除商品请求
// id / slug / title 任意一个都能定位，全部用于投影清理
type DeleteProductReq struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ==================== 响应 DTO ====================

// ProductListResp 商品列表响应
type ProductListResp struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
