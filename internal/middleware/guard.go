package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// ==================== 请求防护 ====================

// isMutating 会改状态的方法才做来源与内容校验
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// OriginGuard 跨域写保护
// 带 Origin 的写请求必须来自配置的 host 或本地开发环境
func OriginGuard(allowedHost string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			// 同源请求与 curl 类客户端没有 Origin 头
			c.Next()
			return
		}

		u, err := url.Parse(origin)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "origin not allowed"})
			c.Abort()
			return
		}

		host := u.Hostname()
		if host == "localhost" || host == "127.0.0.1" {
			c.Next()
			return
		}
		if allowedHost != "" && strings.EqualFold(u.Host, allowedHost) {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "origin not allowed"})
		c.Abort()
	}
}

// JSONGuard JSON 接口的 Content-Type 校验
// multipart 上传路由不要挂这个中间件
func JSONGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		ct := c.ContentType()
		if ct != "application/json" {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"code": 415, "message": "Content-Type 必须是 application/json"})
			c.Abort()
			return
		}
		c.Next()
	}
}
