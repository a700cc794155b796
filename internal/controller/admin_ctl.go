package controller

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"guitarshop_dev_v1_202609/internal/api/dto"
	"guitarshop_dev_v1_202609/internal/middleware"
	"guitarshop_dev_v1_202609/internal/service"
)

type AdminController struct {
	adminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// ==================== 申请接口 ====================

// CreateRequest 提交管理员申请
// 同一邮箱存在待审批申请时幂等返回已有记录
// @Summary 提交管理员权限申请
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.CreateAdminRequestReq true "申请信息"
// @Success 201 {object} map[string]interface{}
// @Router /api/admin/requests [post]
func (ctrl *AdminController) CreateRequest(c *gin.Context) {
	var req dto.CreateAdminRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipal(c)
	record, err := ctrl.adminService.CreateRequest(c.Request.Context(), principal, req.Email, req.Message)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "提交失败: " + err.Error()})
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    record,
	})
}

// GetRequestStatus 查询申请状态
// @Summary 按邮箱查询申请状态
// @Tags Admin
// @Param email query string true "申请邮箱"
// @Success 200 {object} dto.AdminRequestStatusResp
// @Router /api/admin/requests/status [get]
func (ctrl *AdminController) GetRequestStatus(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(400, gin.H{"code": 400, "message": "缺少 email 参数"})
		return
	}

	status, err := ctrl.adminService.RequestStatus(c.Request.Context(), email)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, dto.AdminRequestStatusResp{
		Code:    0,
		Message: "success",
		Status:  status,
	})
}

// ==================== 审批接口 ====================

// ListRequests 列出全部申请
// @Summary 列出管理员申请
// @Tags Admin
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/requests [get]
func (ctrl *AdminController) ListRequests(c *gin.Context) {
	requests, err := ctrl.adminService.ListRequests(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    requests,
	})
}

// ApproveRequest 批准申请
// @Summary 批准申请并授予管理员权限
// @Tags Admin
// @Param id path int true "申请ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/requests/{id}/approve [post]
func (ctrl *AdminController) ApproveRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的申请ID"})
		return
	}

	if err := ctrl.adminService.Approve(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "审批失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "已批准"})
}

// RejectRequest 驳回申请
// @Summary 驳回管理员申请
// @Tags Admin
// @Param id path int true "申请ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/requests/{id}/reject [post]
func (ctrl *AdminController) RejectRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的申请ID"})
		return
	}

	if err := ctrl.adminService.Reject(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "驳回失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "已驳回"})
}

// ==================== 管理员名单接口 ====================

// ListAdmins 列出管理员
// @Summary 列出当前管理员
// @Tags Admin
// @Success 200 {object} map[string]interface{}
// @Router /api/admins [get]
func (ctrl *AdminController) ListAdmins(c *gin.Context) {
	admins, err := ctrl.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    admins,
	})
}

// RevokeAdmin 撤销管理员
// @Summary 撤销管理员权限
// @Tags Admin
// @Param id path string true "管理员ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/admins/{id} [delete]
func (ctrl *AdminController) RevokeAdmin(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的管理员ID"})
		return
	}

	if err := ctrl.adminService.RevokeAdmin(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "撤销失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "已撤销"})
}
