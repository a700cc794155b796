package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/repository"
)

// ==================== 角色与访问级别 ====================

// Role 每个请求解析一次的角色，取代散落各处的邮箱字符串比较
type Role int

const (
	RoleAnonymous Role = iota
	RoleAdmin
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// AccessLevel 操作的访问级别
type AccessLevel int

const (
	AccessPublic AccessLevel = iota
	AccessAdminOrOwner
	AccessOwnerOnly
)

// Allows 角色是否满足访问级别，与存储后端无关
func (r Role) Allows(level AccessLevel) bool {
	switch level {
	case AccessPublic:
		return true
	case AccessAdminOrOwner:
		return r == RoleAdmin || r == RoleOwner
	case AccessOwnerOnly:
		return r == RoleOwner
	default:
		return false
	}
}

// Principal 外部身份提供方解析出的主体
type Principal struct {
	ID    string
	Email string
}

// ==================== 管理员服务 ====================

// AdminService 角色解析 + 管理员审批流
// 店主身份由配置邮箱精确匹配认定（单一信任点），不走数据库标志位
type AdminService struct {
	adminRepo   repository.AdminRepository
	requestRepo repository.AdminRequestRepository
	ownerEmail  string
	log         *zap.SugaredLogger
}

// NewAdminService 创建管理员服务
func NewAdminService(
	adminRepo repository.AdminRepository,
	requestRepo repository.AdminRequestRepository,
	ownerEmail string,
	log *zap.SugaredLogger,
) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		requestRepo: requestRepo,
		ownerEmail:  strings.ToLower(strings.TrimSpace(ownerEmail)),
		log:         log,
	}
}

// ResolveRole 解析主体角色，每个请求只调一次
func (s *AdminService) ResolveRole(ctx context.Context, p *Principal) Role {
	if p == nil || p.Email == "" {
		return RoleAnonymous
	}

	if s.ownerEmail != "" && strings.EqualFold(strings.TrimSpace(p.Email), s.ownerEmail) {
		return RoleOwner
	}

	ok, err := s.adminRepo.Exists(ctx, p.ID)
	if err != nil {
		// 查库失败按匿名处理，错误细节不外泄
		s.log.Errorw("管理员查询失败", "err", err)
		return RoleAnonymous
	}
	if ok {
		return RoleAdmin
	}
	return RoleAnonymous
}

// ==================== 审批流 ====================

// CreateRequest 提交申请（公开）
// 同邮箱已有 pending 时幂等返回已有记录
func (s *AdminService) CreateRequest(ctx context.Context, p *Principal, email, message string) (*model.AdminRequest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, NewValidationError("email", "邮箱不能为空")
	}

	if existing, err := s.requestRepo.GetPendingByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	req := &model.AdminRequest{
		Email:   email,
		Message: message,
		Status:  model.RequestStatusPending,
	}
	if p != nil {
		req.UserID = p.ID
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// RequestStatus 按邮箱查询申请状态（公开），没有记录返回 "none"
// 取最近一次申请，不限状态，审批结果才查得到
func (s *AdminService) RequestStatus(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	req, err := s.requestRepo.GetLatestByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if req == nil {
		return "none", nil
	}
	return req.Status, nil
}

// ListRequests 全部申请（店主限定）
func (s *AdminService) ListRequests(ctx context.Context) ([]model.AdminRequest, error) {
	return s.requestRepo.List(ctx)
}

// Approve 批准申请：状态置 approved 并插入管理员记录，同一事务
func (s *AdminService) Approve(ctx context.Context, id int64) error {
	req, err := s.requestRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return s.requestRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.requestRepo.WithTx(tx).UpdateStatus(ctx, id, model.RequestStatusApproved); err != nil {
			return err
		}

		adminID := req.UserID
		if adminID == "" {
			// 申请人未登录提交的情况，用邮箱占位，首次登录后对得上
			adminID = req.Email
		}
		return s.adminRepo.WithTx(tx).Create(ctx, &model.Admin{
			ID:    adminID,
			Email: req.Email,
		})
	})
}

// Reject 驳回申请：只改状态
func (s *AdminService) Reject(ctx context.Context, id int64) error {
	_, err := s.requestRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.requestRepo.UpdateStatus(ctx, id, model.RequestStatusRejected)
}

// ListAdmins 管理员列表（店主限定）
func (s *AdminService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.adminRepo.List(ctx)
}

// RevokeAdmin 撤销管理员（店主限定）
func (s *AdminService) RevokeAdmin(ctx context.Context, id string) error {
	return s.adminRepo.Delete(ctx, id)
}
