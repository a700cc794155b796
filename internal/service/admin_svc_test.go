package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/repository"
)

// ==================== 测试辅助 ====================

func newAdminService(t *testing.T, ownerEmail string) *AdminService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Admin{}, &model.AdminRequest{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewAdminService(
		repository.NewAdminRepository(db),
		repository.NewAdminRequestRepository(db),
		ownerEmail,
		zap.NewNop().Sugar(),
	)
}

// ==================== 角色解析 ====================

func TestRole_Allows(t *testing.T) {
	cases := []struct {
		role  Role
		level AccessLevel
		want  bool
	}{
		{RoleAnonymous, AccessPublic, true},
		{RoleAnonymous, AccessAdminOrOwner, false},
		{RoleAnonymous, AccessOwnerOnly, false},
		{RoleAdmin, AccessPublic, true},
		{RoleAdmin, AccessAdminOrOwner, true},
		{RoleAdmin, AccessOwnerOnly, false},
		{RoleOwner, AccessPublic, true},
		{RoleOwner, AccessAdminOrOwner, true},
		{RoleOwner, AccessOwnerOnly, true},
	}

	for _, c := range cases {
		if got := c.role.Allows(c.level); got != c.want {
			t.Errorf("%v.Allows(%v) = %v, want %v", c.role, c.level, got, c.want)
		}
	}
}

func TestResolveRole_Owner(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	role := svc.ResolveRole(ctx, &Principal{ID: "u-1", Email: "Owner@Shop.com"})
	if role != RoleOwner {
		t.Errorf("店主邮箱应解析为 owner（大小写不敏感）, got %v", role)
	}
}

func TestResolveRole_Admin(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	svc.adminRepo.Create(ctx, &model.Admin{ID: "u-2", Email: "admin@shop.com"})

	role := svc.ResolveRole(ctx, &Principal{ID: "u-2", Email: "admin@shop.com"})
	if role != RoleAdmin {
		t.Errorf("名单内的主体应解析为 admin, got %v", role)
	}
}

func TestResolveRole_Anonymous(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	if role := svc.ResolveRole(ctx, nil); role != RoleAnonymous {
		t.Errorf("无主体应为 anonymous, got %v", role)
	}
	if role := svc.ResolveRole(ctx, &Principal{ID: "u-9", Email: "stranger@x.com"}); role != RoleAnonymous {
		t.Errorf("名单外主体应为 anonymous, got %v", role)
	}
}

func TestResolveRole_EmptyOwnerEmail(t *testing.T) {
	// 未配置店主邮箱时没有人是 owner
	svc := newAdminService(t, "")
	ctx := context.Background()

	if role := svc.ResolveRole(ctx, &Principal{ID: "u-1", Email: ""}); role != RoleAnonymous {
		t.Errorf("空邮箱不应匹配空配置, got %v", role)
	}
}

// ==================== 审批流 ====================

func TestCreateRequest_Idempotent(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	first, err := svc.CreateRequest(ctx, nil, "DEV@shop.com", "please")
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}
	if first.Status != model.RequestStatusPending {
		t.Errorf("status = %q, want pending", first.Status)
	}
	if first.Email != "dev@shop.com" {
		t.Errorf("邮箱应小写归一, got %q", first.Email)
	}

	// 同邮箱重复提交返回已有记录
	second, err := svc.CreateRequest(ctx, nil, "dev@shop.com", "again")
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("重复提交应幂等, id %d vs %d", second.ID, first.ID)
	}
}

func TestRequestStatus(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	status, err := svc.RequestStatus(ctx, "nobody@x.com")
	if err != nil {
		t.Fatalf("RequestStatus() error = %v", err)
	}
	if status != "none" {
		t.Errorf("无记录应返回 none, got %q", status)
	}

	svc.CreateRequest(ctx, nil, "dev@shop.com", "")
	status, _ = svc.RequestStatus(ctx, "dev@shop.com")
	if status != model.RequestStatusPending {
		t.Errorf("status = %q, want pending", status)
	}
}

func TestRequestStatus_AfterDecision(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	// 审批之后状态查询要能看到结果，而不是退回 none
	approved, _ := svc.CreateRequest(ctx, nil, "dev@shop.com", "")
	svc.Approve(ctx, approved.ID)
	status, err := svc.RequestStatus(ctx, "dev@shop.com")
	if err != nil {
		t.Fatalf("RequestStatus() error = %v", err)
	}
	if status != model.RequestStatusApproved {
		t.Errorf("批准后 status = %q, want approved", status)
	}

	rejected, _ := svc.CreateRequest(ctx, nil, "other@shop.com", "")
	svc.Reject(ctx, rejected.ID)
	status, _ = svc.RequestStatus(ctx, "other@shop.com")
	if status != model.RequestStatusRejected {
		t.Errorf("驳回后 status = %q, want rejected", status)
	}
}

func TestApprove_GrantsAdmin(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	req, _ := svc.CreateRequest(ctx, &Principal{ID: "u-7", Email: "dev@shop.com"}, "dev@shop.com", "")

	if err := svc.Approve(ctx, req.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	// 一个事务内：状态翻转 + 管理员入名单
	role := svc.ResolveRole(ctx, &Principal{ID: "u-7", Email: "dev@shop.com"})
	if role != RoleAdmin {
		t.Errorf("批准后应解析为 admin, got %v", role)
	}

	got, _ := svc.requestRepo.GetByID(ctx, req.ID)
	if got.Status != model.RequestStatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
}

func TestApprove_AnonymousSubmitterUsesEmailID(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	// 未登录提交的申请没有 UserID，批准后用邮箱占位
	req, _ := svc.CreateRequest(ctx, nil, "dev@shop.com", "")
	if err := svc.Approve(ctx, req.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	ok, _ := svc.adminRepo.Exists(ctx, "dev@shop.com")
	if !ok {
		t.Error("管理员记录应以邮箱为 ID")
	}
}

func TestReject(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	req, _ := svc.CreateRequest(ctx, &Principal{ID: "u-8", Email: "dev@shop.com"}, "dev@shop.com", "")
	if err := svc.Reject(ctx, req.ID); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	got, _ := svc.requestRepo.GetByID(ctx, req.ID)
	if got.Status != model.RequestStatusRejected {
		t.Errorf("status = %q, want rejected", got.Status)
	}

	// 驳回不授予权限
	if role := svc.ResolveRole(ctx, &Principal{ID: "u-8", Email: "dev@shop.com"}); role != RoleAnonymous {
		t.Errorf("驳回后不应有权限, got %v", role)
	}
}

func TestApprove_NotFound(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")

	if err := svc.Approve(context.Background(), 9999); err != ErrNotFound {
		t.Errorf("不存在的申请应返回 ErrNotFound, got %v", err)
	}
}

func TestRevokeAdmin(t *testing.T) {
	svc := newAdminService(t, "owner@shop.com")
	ctx := context.Background()

	svc.adminRepo.Create(ctx, &model.Admin{ID: "u-2", Email: "admin@shop.com"})
	if err := svc.RevokeAdmin(ctx, "u-2"); err != nil {
		t.Fatalf("RevokeAdmin() error = %v", err)
	}

	if role := svc.ResolveRole(ctx, &Principal{ID: "u-2", Email: "admin@shop.com"}); role != RoleAnonymous {
		t.Errorf("撤销后应回到 anonymous, got %v", role)
	}
}
