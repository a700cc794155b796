package dto

// ==================== 请求 DTO ====================

// CreateAdminRequestReq 提交管理员权限申请（公开接口）
type CreateAdminRequestReq struct {
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message"`
}

// ==================== 响应 DTO ====================

// AdminRequestStatusResp 按邮箱查询申请状态
type AdminRequestStatusResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"` // pending / approved / rejected / none
}
