package handler

import (
	"context"
	"net/http"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/agencysite/internal/view"
	"github.com/gin-gonic/gin"
)

type notesRequest struct {
	Notes string `json:"notes"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type assignRequest struct {
	WorkerID string `json:"worker_id"`
}

type roleRequest struct {
	Role string `json:"role"`
}

// listJSON 返回一个列表接口，结果放在 key 下
func listJSON[T any](key, failure string, list func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := list(c.Request.Context())
		if err != nil {
			respondServiceError(c, err, failure)
			return
		}
		if items == nil {
			items = []T{}
		}
		c.JSON(http.StatusOK, gin.H{key: items})
	}
}

// deleteJSON 按 :id 删除
func deleteJSON(success, failure string, remove func(context.Context, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := remove(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err, failure)
			return
		}
		respondMessage(c, success, nil)
	}
}

// notesJSON 保存 :id 的后台备注
func notesJSON[T any](key string, save func(context.Context, string, string) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload notesRequest
		if !bindJSON(c, &payload, "Failed to save notes") {
			return
		}
		record, err := save(c.Request.Context(), c.Param("id"), payload.Notes)
		if err != nil {
			respondServiceError(c, err, "Failed to save notes")
			return
		}
		respondMessage(c, "Notes saved", gin.H{key: record})
	}
}

// ShowAdmin 渲染后台首页
func (a *API) ShowAdmin(c *gin.Context) {
	stats, err := a.stats.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
	}
	a.renderHTML(c, http.StatusOK, "admin.html", gin.H{
		"title":           "Admin",
		"stats":           stats,
		"icons":           view.IconOptions(),
		"requestStatuses": db.RequestStatuses(),
	})
}

// GetStats 返回后台统计数字
func (a *API) GetStats(c *gin.Context) {
	stats, err := a.stats.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetIcons 返回可选图标
func (a *API) GetIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": view.IconOptions()})
}

// ListUsers 返回全部账号
func (a *API) ListUsers(c *gin.Context) {
	listJSON("users", "Failed to load users", a.auth.All)(c)
}

// UpdateUserRole 修改账号角色，不允许管理员取消自己的权限
func (a *API) UpdateUserRole(c *gin.Context) {
	var payload roleRequest
	if !bindJSON(c, &payload, "Failed to update role") {
		return
	}
	id := c.Param("id")
	if viewer := CurrentViewer(c); viewer.User != nil && viewer.User.ID == id && payload.Role != db.RoleAdmin {
		respondError(c, http.StatusBadRequest, "You cannot remove your own admin role")
		return
	}
	user, err := a.auth.SetRole(c.Request.Context(), id, payload.Role)
	if err != nil {
		respondServiceError(c, err, "Failed to update role")
		return
	}
	respondMessage(c, "Role updated", gin.H{"user": user})
}

// GetSettings 返回站点设置
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings 保存站点设置
func (a *API) UpdateSettings(c *gin.Context) {
	var payload service.SiteSettings
	if !bindJSON(c, &payload, "Failed to save settings") {
		return
	}
	settings, err := a.settings.Update(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to save settings")
		return
	}
	respondMessage(c, "Settings saved", gin.H{"settings": settings})
}
