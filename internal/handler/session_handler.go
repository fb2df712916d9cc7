package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type registerRequest struct {
	Email    string `json:"email" form:"email"`
	FullName string `json:"full_name" form:"full_name"`
	Password string `json:"password" form:"password"`
}

// landingFor 登录后的落地页：管理员进入后台，其余进入个人面板
func landingFor(user *db.User) string {
	if user.IsAdmin() {
		return "/admin"
	}
	return "/dashboard"
}

// ShowLoginPage 渲染登录页面，已登录时直接跳转
func (a *API) ShowLoginPage(c *gin.Context) {
	if viewer := CurrentViewer(c); viewer.Authenticated() {
		c.Redirect(http.StatusFound, landingFor(viewer.User))
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{"title": "Sign in"})
}

// Login 校验账号密码并写入会话
func (a *API) Login(c *gin.Context) {
	var payload credentialsRequest
	if err := c.ShouldBind(&payload); err != nil {
		a.renderHTML(c, http.StatusBadRequest, "login.html", gin.H{"title": "Sign in", "error": "Please enter your email and password"})
		return
	}

	user, err := a.auth.Authenticate(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		status := http.StatusUnauthorized
		message := "Invalid email or password"
		if !errors.Is(err, service.ErrInvalidCredentials) {
			c.Error(err)
			status = http.StatusInternalServerError
			message = "Sign in failed, please try again"
		}
		a.renderHTML(c, status, "login.html", gin.H{"title": "Sign in", "error": message, "email": payload.Email})
		return
	}

	if err := a.startSession(c, user); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{"title": "Sign in", "error": "Failed to save session"})
		return
	}
	c.Redirect(http.StatusFound, landingFor(user))
}

// ShowRegisterPage 渲染注册页面
func (a *API) ShowRegisterPage(c *gin.Context) {
	if CurrentViewer(c).Authenticated() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	a.renderHTML(c, http.StatusOK, "register.html", gin.H{"title": "Create account"})
}

// Register 创建普通账号并直接登录
func (a *API) Register(c *gin.Context) {
	var payload registerRequest
	if err := c.ShouldBind(&payload); err != nil {
		a.renderHTML(c, http.StatusBadRequest, "register.html", gin.H{"title": "Create account", "error": "Please fill in the form"})
		return
	}

	user, err := a.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    payload.Email,
		FullName: payload.FullName,
		Password: payload.Password,
	})
	if err != nil {
		status := statusFor(err)
		message := "Registration failed, please try again"
		switch {
		case errors.Is(err, service.ErrDuplicate):
			message = "An account with this email already exists"
		case status == http.StatusBadRequest:
			message = err.Error()
		default:
			c.Error(err)
		}
		a.renderHTML(c, status, "register.html", gin.H{
			"title":    "Create account",
			"error":    message,
			"email":    payload.Email,
			"fullName": payload.FullName,
		})
		return
	}

	if err := a.startSession(c, user); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout 清空会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/")
}

// IssueToken 为 API 客户端签发 Bearer token
func (a *API) IssueToken(c *gin.Context) {
	var payload credentialsRequest
	if !bindJSON(c, &payload, "Email and password are required") {
		return
	}

	user, err := a.auth.Authenticate(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondServiceError(c, err, "Failed to issue token")
		return
	}

	token, expiresAt, err := a.tokens.Issue(*user)
	if err != nil {
		respondServiceError(c, err, "Failed to issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
		"user":       user,
	})
}

// ShowDashboard 渲染登录用户的个人面板
func (a *API) ShowDashboard(c *gin.Context) {
	viewer := CurrentViewer(c)
	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":     "Dashboard",
		"firstName": firstName(viewer.User),
	})
}

func (a *API) startSession(c *gin.Context, user *db.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserKey, user.ID)
	return session.Save()
}

func firstName(user *db.User) string {
	if user == nil {
		return ""
	}
	name := strings.TrimSpace(user.FullName)
	if name == "" {
		name, _, _ = strings.Cut(user.Email, "@")
		return name
	}
	first, _, _ := strings.Cut(name, " ")
	return first
}
