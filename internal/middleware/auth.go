package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"guitarshop_dev_v1_202609/internal/service"
)

// ==================== 认证中间件 ====================

// Context Keys
const (
	ContextKeyPrincipal = "principal"
	ContextKeyRole      = "role"
)

// SessionClaims 外部身份提供方签发的会话声明
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// parseBearer 从 Authorization 头解出主体
// 任何解析失败统一视为未认证，不区分"没带 token"和"token 坏了"
func parseBearer(c *gin.Context, secret string) *service.Principal {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	token, err := jwt.ParseWithClaims(parts[1], &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return nil
	}

	return &service.Principal{ID: claims.Subject, Email: claims.Email}
}

// Auth 解析主体并解析角色，一个请求只解析一次
// 不在这里拦截：放行交给 RequireLevel 按操作级别判定
func Auth(adminSvc *service.AdminService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := parseBearer(c, jwtSecret)
		role := adminSvc.ResolveRole(c.Request.Context(), principal)

		if principal != nil {
			c.Set(ContextKeyPrincipal, principal)
		}
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

// RequireLevel 按访问级别拦截
// 拒绝时只回通用讯息，不泄露是身份无效还是权限不够
func RequireLevel(level service.AccessLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role.Allows(level) {
			c.Next()
			return
		}

		status := http.StatusUnauthorized
		if role != service.RoleAnonymous {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"code": status, "message": "unauthorized"})
		c.Abort()
	}
}

// ==================== 辅助函数 ====================

// GetPrincipal 从 Context 取主体，没有时返回 nil
func GetPrincipal(c *gin.Context) *service.Principal {
	if v, exists := c.Get(ContextKeyPrincipal); exists {
		return v.(*service.Principal)
	}
	return nil
}

// GetRole 从 Context 取角色
func GetRole(c *gin.Context) service.Role {
	if v, exists := c.Get(ContextKeyRole); exists {
		return v.(service.Role)
	}
	return service.RoleAnonymous
}
