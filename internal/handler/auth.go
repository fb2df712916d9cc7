package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserKey = "user_id"
	viewerKey      = "__viewer"
)

// Viewer 是当前请求的访问者，未登录时 User 为空
type Viewer struct {
	User *db.User
}

// Authenticated reports whether a user is signed in.
func (v Viewer) Authenticated() bool {
	return v.User != nil
}

// IsAdmin reports whether the signed-in user has the admin role.
func (v Viewer) IsAdmin() bool {
	return v.User != nil && v.User.IsAdmin()
}

// CurrentViewer 返回 LoadViewer 写入上下文的访问者
func CurrentViewer(c *gin.Context) Viewer {
	if value, exists := c.Get(viewerKey); exists {
		if viewer, ok := value.(Viewer); ok {
			return viewer
		}
	}
	return Viewer{}
}

// LoadViewer 从会话或 Bearer token 中解析访问者，不拒绝任何请求
func (a *API) LoadViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := a.bearerUserID(c)
		if userID == "" {
			if value, ok := sessions.Default(c).Get(sessionUserKey).(string); ok {
				userID = value
			}
		}

		viewer := Viewer{}
		if userID != "" {
			user, err := a.auth.Get(c.Request.Context(), userID)
			switch {
			case err == nil:
				viewer.User = user
			case errors.Is(err, service.ErrNotFound):
				// 账号已被删除，清理会话
				session := sessions.Default(c)
				session.Delete(sessionUserKey)
				_ = session.Save()
			default:
				c.Error(err)
			}
		}

		c.Set(viewerKey, viewer)
		c.Next()
	}
}

func (a *API) bearerUserID(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	claims, err := a.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return ""
	}
	return claims.Subject
}

// RequireUser 未登录访问者跳转到 /login
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentViewer(c).Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminPage 未登录或非管理员访问后台页面时跳转到首页
func RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentViewer(c).IsAdmin() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminAPI 后台接口返回 401 / 403
func RequireAdminAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := CurrentViewer(c)
		if !viewer.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !viewer.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
