package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"guitarshop_dev_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// AdminRepository 管理员仓储接口
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.Admin, error)
	Delete(ctx context.Context, id string) error
	WithTx(tx *gorm.DB) AdminRepository
}

// AdminRequestRepository 管理员申请仓储接口
type AdminRequestRepository interface {
	Create(ctx context.Context, req *model.AdminRequest) error
	GetByID(ctx context.Context, id int64) (*model.AdminRequest, error)
	GetPendingByEmail(ctx context.Context, email string) (*model.AdminRequest, error)
	GetLatestByEmail(ctx context.Context, email string) (*model.AdminRequest, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context) ([]model.AdminRequest, error)
	WithTx(tx *gorm.DB) AdminRequestRepository
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ==================== 管理员实现 ====================

type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓储
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *adminRepo) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&admins).Error
	return admins, err
}

func (r *adminRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Admin{}).Error
}

func (r *adminRepo) WithTx(tx *gorm.DB) AdminRepository {
	return &adminRepo{db: tx}
}

// ==================== 申请实现 ====================

type adminRequestRepo struct {
	db *gorm.DB
}

// NewAdminRequestRepository 创建管理员申请仓储
func NewAdminRequestRepository(db *gorm.DB) AdminRequestRepository {
	return &adminRequestRepo{db: db}
}

func (r *adminRequestRepo) Create(ctx context.Context, req *model.AdminRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *adminRequestRepo) GetByID(ctx context.Context, id int64) (*model.AdminRequest, error) {
	var req model.AdminRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *adminRequestRepo) GetPendingByEmail(ctx context.Context, email string) (*model.AdminRequest, error) {
	var req model.AdminRequest
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, model.RequestStatusPending).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetLatestByEmail 同邮箱最近一次申请，不限状态（状态查询接口用）
func (r *adminRequestRepo) GetLatestByEmail(ctx context.Context, email string) (*model.AdminRequest, error) {
	var req model.AdminRequest
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *adminRequestRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *adminRequestRepo) List(ctx context.Context) ([]model.AdminRequest, error) {
	var reqs []model.AdminRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *adminRequestRepo) WithTx(tx *gorm.DB) AdminRequestRepository {
	return &adminRequestRepo{db: tx}
}

func (r *adminRequestRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
