package handler

import (
	"time"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/media"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 是构造 API 所需的外部依赖
type Options struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Storage  media.Storage
	Notifier service.Notifier
	Tokens   *service.TokenIssuer
	SiteName string
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	logger       *zap.Logger
	contacts     *service.ContactInfoService
	offerings    *service.OfferingService
	products     *service.ProductService
	projects     *service.ProjectService
	workers      *service.WorkerService
	applications *service.ApplicationService
	assignments  *service.StudentAssignmentService
	chatFellows  *service.ChatFellowService
	submissions  *service.SubmissionService
	auth         *service.AuthService
	settings     *service.SettingService
	stats        *service.StatsService
	tokens       *service.TokenIssuer
	storage      media.Storage
	now          func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = service.NewTokenIssuer("", 0)
	}

	submissions := service.NewSubmissionService(opts.DB, opts.Notifier)
	submissions.OnNotifyError(func(err error) {
		logger.Warn("contact submission notification failed", zap.Error(err))
	})

	return &API{
		db:           opts.DB,
		logger:       logger,
		contacts:     service.NewContactInfoService(opts.DB),
		offerings:    service.NewOfferingService(opts.DB),
		products:     service.NewProductService(opts.DB),
		projects:     service.NewProjectService(opts.DB),
		workers:      service.NewWorkerService(opts.DB),
		applications: service.NewApplicationService(opts.DB),
		assignments:  service.NewStudentAssignmentService(opts.DB),
		chatFellows:  service.NewChatFellowService(opts.DB),
		submissions:  submissions,
		auth:         service.NewAuthService(opts.DB),
		settings:     service.NewSettingService(opts.DB, opts.SiteName),
		stats:        service.NewStatsService(opts.DB),
		tokens:       tokens,
		storage:      opts.Storage,
		now:          time.Now,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

type siteViewModel struct {
	Name           string
	WhatsAppNumber string
	WhatsAppLink   string
	Email          string
	Phone          string
	Address        string
	Social         []socialLink
}

type socialLink struct {
	Label string
	URL   string
}

const siteContextKey = "__site_view"

// siteView 每个请求只读取一次站点设置与联系方式
func (a *API) siteView(c *gin.Context) siteViewModel {
	if cached, exists := c.Get(siteContextKey); exists {
		if view, ok := cached.(siteViewModel); ok {
			return view
		}
	}

	ctx := c.Request.Context()
	settings, err := a.settings.Get(ctx)
	if err != nil {
		c.Error(err)
	}
	dir, err := a.contacts.Directory(ctx)
	if err != nil {
		c.Error(err)
	}

	view := siteViewModel{
		Name:           settings.SiteName,
		WhatsAppNumber: dir.WhatsAppNumber(settings.WhatsAppFallback),
		WhatsAppLink:   dir.WhatsAppLink(settings.WhatsAppFallback, ""),
		Email:          dir.ByKey(db.ContactKeyEmail),
		Phone:          dir.ByKey(db.ContactKeyPhone),
		Address:        dir.ByKey("address"),
	}
	for _, item := range dir.ByCategory("social") {
		view.Social = append(view.Social, socialLink{Label: item.Label, URL: item.Value})
	}

	c.Set(siteContextKey, view)
	return view
}

// renderHTML 渲染页面时附加站点信息与当前访问者
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = a.siteView(c)
	}
	if _, exists := payload["viewer"]; !exists {
		payload["viewer"] = CurrentViewer(c)
	}
	payload["path"] = c.Request.URL.Path
	payload["year"] = a.now().Year()

	c.HTML(status, template, payload)
}
