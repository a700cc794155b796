package controller

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"guitarshop_dev_v1_202609/internal/api/dto"
	"guitarshop_dev_v1_202609/internal/storage"
)

type UploadController struct {
	provider storage.Provider
}

func NewUploadController(provider storage.Provider) *UploadController {
	return &UploadController{provider: provider}
}

// ==================== 上传接口 ====================

// Upload 上传图片
// multipart 传文件字段 image，JSON 传 sourceUrl 走抓取转存
// @Summary 上传图片到对象存储
// @Tags Upload
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /api/uploads [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	// 对象存储初始化失败时 provider 为 nil，直接报不可用而不是空指针崩掉
	if ctrl.provider == nil {
		c.JSON(503, gin.H{"code": 503, "message": "对象存储未配置"})
		return
	}

	ctx := c.Request.Context()

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, header, err := c.Request.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"code": 400, "message": "请上传图片文件"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(500, gin.H{"code": 500, "message": "读取文件失败"})
			return
		}

		ref, err := ctrl.provider.Upload(ctx, data, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(500, gin.H{"code": 500, "message": "上传失败: " + err.Error()})
			return
		}

		c.JSON(201, gin.H{"code": 0, "message": "success", "data": ref})
		return
	}

	var req dto.UploadFromURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ref, err := ctrl.provider.UploadFromURL(ctx, req.SourceURL, req.Filename)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "转存失败: " + err.Error()})
		return
	}

	c.JSON(201, gin.H{"code": 0, "message": "success", "data": ref})
}

// ==================== 删除接口 ====================

// Delete 删除存储对象
// @Summary 按路径删除存储对象
// @Tags Upload
// @Accept json
// @Produce json
// @Param body body dto.DeleteUploadReq true "对象路径"
// @Success 200 {object} map[string]interface{}
// @Router /api/uploads [delete]
func (ctrl *UploadController) Delete(c *gin.Context) {
	if ctrl.provider == nil {
		c.JSON(503, gin.H{"code": 503, "message": "对象存储未配置"})
		return
	}

	var req dto.DeleteUploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := ctrl.provider.Delete(c.Request.Context(), req.Path); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "删除成功"})
}
