package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"guitarshop_dev_v1_202609/internal/api/dto"
	"guitarshop_dev_v1_202609/internal/repository"
	"guitarshop_dev_v1_202609/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// 默认读投影文件（店面视角），view=canonical 时走数据库并支持分页搜索
// @Summary 获取商品列表
// @Tags Product
// @Param view query string false "canonical 走数据库"
// @Param keyword query string false "标题搜索（仅 canonical）"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ProductListResp
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	if c.Query("view") == "canonical" {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		products, total, err := ctrl.productService.List(c.Request.Context(), repository.ProductFilter{
			Keyword:  c.Query("keyword"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
			return
		}

		c.JSON(200, dto.ProductListResp{
			Code:     0,
			Message:  "success",
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
		return
	}

	entries, err := ctrl.productService.ListProjection()
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    entries,
	})
}

// GetProduct 获取商品详情
// @Summary 获取单个商品详情
// @Tags Product
// @Param id path string true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	product, err := ctrl.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// ==================== CRUD 接口 ====================

// CreateProduct 创建商品 (双写：数据库 + 投影文件)
// @Summary 创建商品
// @Tags Product
// @Accept json
// @Produce json
// @Param body body dto.CreateProductReq true "商品信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), &req)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// UpdateProduct 更新商品
// @Summary 更新商品（仅触碰请求中出现的字段）
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "商品ID"
// @Param body body dto.UpdateProductReq true "更新内容"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// DeleteProduct 删除商品
// 路径参数是 ID，slug / title 可通过 query 兜底匹配投影条目
// @Summary 删除商品
// @Tags Product
// @Param id path string true "商品ID"
// @Param slug query string false "投影 slug"
// @Param title query string false "商品标题"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	req := dto.DeleteProductReq{
		ID:    c.Param("id"),
		Slug:  c.Query("slug"),
		Title: c.Query("title"),
	}
	// 只知道 slug / title 时路径段用 "-" 占位
	if req.ID == "-" {
		req.ID = ""
	}
	if req.ID == "" && req.Slug == "" && req.Title == "" {
		c.JSON(400, gin.H{"code": 400, "message": "缺少商品标识"})
		return
	}

	// 删除不回传失败：数据库侧尽力而为，投影侧必定清理
	ctrl.productService.Delete(c.Request.Context(), req)

	c.JSON(200, gin.H{"code": 0, "message": "删除成功"})
}

// ==================== 投影接口 ====================

// RebuildProjection 全量重建投影文件
// @Summary 以数据库为准重建投影
// @Tags Product
// @Success 200 {object} map[string]interface{}
// @Router /api/products/projection/rebuild [post]
func (ctrl *ProductController) RebuildProjection(c *gin.Context) {
	if err := ctrl.productService.RebuildProjection(c.Request.Context()); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "重建失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "重建成功"})
}
