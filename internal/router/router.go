package router

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/agencysite/internal/handler"
	"github.com/agencysite/internal/logging"
	"github.com/agencysite/internal/media"
	"github.com/agencysite/internal/service"
	"github.com/agencysite/internal/view"
	"github.com/agencysite/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 描述构建路由所需的依赖
type Options struct {
	DB            *gorm.DB
	Logger        *zap.Logger
	SessionSecret string
	SecureCookie  bool
	CORSOrigins   []string
	SiteName      string
	Storage       media.Storage
	Notifier      service.Notifier
	Tokens        *service.TokenIssuer

	// UploadDir 非空时以 UploadURLPath 对外提供本地上传目录
	UploadDir     string
	UploadURLPath string
}

// TemplateFuncs 返回页面模板使用的函数
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"icon":     view.IconSVG,
		"markdown": view.Markdown,
		"plain":    view.Plain,
		"whatsapp": service.WhatsAppLink,
	}
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) (*gin.Engine, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("database is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Requests(logger), corsMiddleware("/api/", opts.CORSOrigins))

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("agency_session", store))

	tmpl, err := web.Templates(TemplateFuncs())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	r.StaticFS("/assets", http.FS(web.Static()))
	if opts.UploadDir != "" && opts.UploadURLPath != "" {
		r.Static(opts.UploadURLPath, opts.UploadDir)
	}

	api := handler.NewAPI(handler.Options{
		DB:       opts.DB,
		Logger:   logger,
		Storage:  opts.Storage,
		Notifier: opts.Notifier,
		Tokens:   opts.Tokens,
		SiteName: opts.SiteName,
	})
	r.Use(api.LoadViewer())

	r.GET("/healthz", api.HealthCheck)

	// 前台页面
	r.GET("/", api.ShowHome)
	r.GET("/services", api.ShowServices)
	r.GET("/pricing", api.ShowPricing)
	r.GET("/products", api.ShowProducts)
	r.GET("/projects", api.ShowProjects)
	r.GET("/about", api.ShowAbout)
	r.GET("/contact", api.ShowContact)
	r.POST("/contact", api.SubmitContact)
	r.GET("/apply", api.ShowApply)
	r.POST("/apply", api.SubmitApplication)

	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/register", api.ShowRegisterPage)
	r.POST("/register", api.Register)
	r.GET("/logout", api.Logout)
	r.POST("/logout", api.Logout)
	r.GET("/dashboard", handler.RequireUser(), api.ShowDashboard)

	// 对外 JSON 接口
	public := r.Group("/api")
	{
		public.GET("/contact-info", api.GetPublicContactInfo)
		public.GET("/services", api.GetPublicServices)
		public.GET("/pricing", api.GetPublicPricing)
		public.GET("/products", api.GetPublicProducts)
		public.GET("/projects", api.GetPublicProjects)
		public.POST("/contact", api.SubmitContact)
		public.POST("/applications", api.SubmitApplication)
		public.POST("/student-assignments", api.SubmitStudentAssignment)
		public.POST("/chat-fellow-requests", api.SubmitChatFellowRequest)
		public.POST("/auth/token", api.IssueToken)
	}

	// 后台管理路由
	r.GET("/admin", handler.RequireAdminPage(), api.ShowAdmin)

	admin := r.Group("/admin/api")
	admin.Use(handler.RequireAdminAPI())
	{
		admin.GET("/stats", api.GetStats)
		admin.GET("/icons", api.GetIcons)
		admin.POST("/uploads", api.UploadImage)

		admin.GET("/settings", api.GetSettings)
		admin.PUT("/settings", api.UpdateSettings)
		admin.GET("/users", api.ListUsers)
		admin.PATCH("/users/:id/role", api.UpdateUserRole)

		admin.GET("/contact-info", api.ListContactInfo)
		admin.POST("/contact-info", api.CreateContactInfo)
		admin.PUT("/contact-info/:id", api.UpdateContactInfo)
		admin.PATCH("/contact-info/:id/value", api.UpdateContactValue)
		admin.DELETE("/contact-info/:id", api.DeleteContactInfo)

		admin.GET("/services", api.ListServices)
		admin.POST("/services", api.CreateService)
		admin.GET("/services/:id/form", api.GetServiceForm)
		admin.PUT("/services/:id", api.UpdateService)
		admin.PATCH("/services/:id/toggle", api.ToggleService)
		admin.DELETE("/services/:id", api.DeleteService)

		admin.GET("/products", api.ListProducts)
		admin.POST("/products", api.CreateProduct)
		admin.GET("/products/:id/form", api.GetProductForm)
		admin.PUT("/products/:id", api.UpdateProduct)
		admin.PATCH("/products/:id/toggle", api.ToggleProduct)
		admin.DELETE("/products/:id", api.DeleteProduct)

		admin.GET("/projects", api.ListProjects)
		admin.POST("/projects", api.CreateProject)
		admin.GET("/projects/:id/form", api.GetProjectForm)
		admin.PUT("/projects/:id", api.UpdateProject)
		admin.PATCH("/projects/:id/toggle", api.ToggleProject)
		admin.DELETE("/projects/:id", api.DeleteProject)

		admin.GET("/categories", api.ListCategories)
		admin.POST("/categories", api.CreateCategory)
		admin.DELETE("/categories/:id", api.DeleteCategory)

		admin.GET("/workers", api.ListWorkers)
		admin.GET("/workers/active", api.ListActiveWorkers)
		admin.POST("/workers", api.CreateWorker)
		admin.GET("/workers/:id/form", api.GetWorkerForm)
		admin.PUT("/workers/:id", api.UpdateWorker)
		admin.PATCH("/workers/:id/toggle", api.ToggleWorker)
		admin.DELETE("/workers/:id", api.DeleteWorker)

		admin.GET("/applications", api.ListApplications)
		admin.PATCH("/applications/:id/status", api.UpdateApplicationStatus)
		admin.PUT("/applications/:id/notes", api.SaveApplicationNotes)
		admin.DELETE("/applications/:id", api.DeleteApplication)

		registerBoard(admin.Group("/student-assignments"), api.StudentAssignmentRoutes())
		registerBoard(admin.Group("/chat-fellow"), api.ChatFellowRoutes())

		admin.GET("/submissions", api.ListSubmissions)
		admin.PATCH("/submissions/:id/read", api.ToggleSubmissionRead)
		admin.PUT("/submissions/:id/notes", api.SaveSubmissionNotes)
		admin.DELETE("/submissions/:id", api.DeleteSubmission)
	}

	r.NoRoute(api.NotFound)

	return r, nil
}

func registerBoard(group *gin.RouterGroup, routes handler.RequestRoutes) {
	group.GET("", routes.List)
	group.PATCH("/:id/assign", routes.Assign)
	group.PATCH("/:id/status", routes.Status)
	group.PUT("/:id/notes", routes.Notes)
	group.DELETE("/:id", routes.Delete)
}

// corsMiddleware 允许外部前端读取 prefix 下的公开接口；未配置来源时不启用。
// 挂在引擎上而不是路由组上，预检 OPTIONS 请求才能被处理。
func corsMiddleware(prefix string, origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.MaxAge = 12 * time.Hour
	handle := cors.New(cfg)
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, prefix) {
			c.Next()
			return
		}
		handle(c)
	}
}
