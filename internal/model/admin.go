package model

import "time"

// ==================== 管理员 ====================

// Admin 管理员记录
// ID 即外部身份提供方的 principal 标识，只有店主能授予
type Admin struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Email     string    `gorm:"size:255;index" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// ==================== 管理员申请 ====================

// 申请状态
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AdminRequest 管理员权限申请
// 同一邮箱同时最多一条 pending，重复提交幂等返回已有记录
type AdminRequest struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	Email     string    `gorm:"size:255;index;not null" json:"email"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"size:20;index;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminRequest) TableName() string {
	return "admin_requests"
}
