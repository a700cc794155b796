package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"guitarshop_dev_v1_202609/internal/service"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject, email, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("签发测试 token 失败: %v", err)
	}
	return signed
}

// ==================== Bearer 解析 ====================

func TestParseBearer(t *testing.T) {
	valid := signToken(t, "u-1", "dev@shop.com", testSecret)

	cases := []struct {
		name   string
		header string
		wantID string
	}{
		{"合法 token", "Bearer " + valid, "u-1"},
		{"没有头", "", ""},
		{"不是 Bearer", "Basic abc", ""},
		{"错误密钥签发", "Bearer " + signToken(t, "u-1", "dev@shop.com", "wrong"), ""},
		{"token 坏了", "Bearer not.a.token", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if c.header != "" {
				ctx.Request.Header.Set("Authorization", c.header)
			}

			p := parseBearer(ctx, testSecret)
			if c.wantID == "" {
				if p != nil {
					t.Errorf("应解析失败, got %+v", p)
				}
				return
			}
			if p == nil || p.ID != c.wantID {
				t.Errorf("principal = %+v, want ID %q", p, c.wantID)
			}
		})
	}
}

func TestParseBearer_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Email: "dev@shop.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, _ := token.SignedString([]byte(testSecret))

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.Header.Set("Authorization", "Bearer "+signed)

	if p := parseBearer(ctx, testSecret); p != nil {
		t.Errorf("过期 token 应视为未认证, got %+v", p)
	}
}

// ==================== 级别拦截 ====================

func setupLevelRouter(role service.Role, level service.AccessLevel) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextKeyRole, role)
		c.Next()
	})
	r.GET("/guarded", RequireLevel(level), func(c *gin.Context) {
		c.JSON(200, gin.H{"code": 0})
	})
	return r
}

func TestRequireLevel(t *testing.T) {
	cases := []struct {
		name  string
		role  service.Role
		level service.AccessLevel
		want  int
	}{
		{"匿名访问公开接口", service.RoleAnonymous, service.AccessPublic, 200},
		{"匿名访问管理接口", service.RoleAnonymous, service.AccessAdminOrOwner, 401},
		{"管理员访问管理接口", service.RoleAdmin, service.AccessAdminOrOwner, 200},
		{"管理员访问店主接口", service.RoleAdmin, service.AccessOwnerOnly, 403},
		{"店主访问店主接口", service.RoleOwner, service.AccessOwnerOnly, 200},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := setupLevelRouter(c.role, c.level)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

			if w.Code != c.want {
				t.Errorf("status = %d, want %d", w.Code, c.want)
			}
		})
	}
}

func TestRequireLevel_GenericMessage(t *testing.T) {
	// 拒绝讯息不区分"没登录"和"权限不够"
	r := setupLevelRouter(service.RoleAdmin, service.AccessOwnerOnly)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if body := w.Body.String(); !strings.Contains(body, "unauthorized") {
		t.Errorf("应回通用讯息, body = %s", body)
	}
}
