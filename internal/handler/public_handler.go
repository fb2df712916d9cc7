package handler

import (
	"net/http"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

const homeProjectLimit = 3

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
	Service string `json:"service" form:"service"`
}

type applicationRequest struct {
	FullName     string `json:"full_name" form:"full_name"`
	Email        string `json:"email" form:"email"`
	Phone        string `json:"phone" form:"phone"`
	Skills       string `json:"skills" form:"skills"`
	Experience   string `json:"experience" form:"experience"`
	PortfolioURL string `json:"portfolio_url" form:"portfolio_url"`
}

type studentAssignmentRequest struct {
	StudentName           string `json:"student_name" form:"student_name"`
	StudentEmail          string `json:"student_email" form:"student_email"`
	StudentPhone          string `json:"student_phone" form:"student_phone"`
	AssignmentTitle       string `json:"assignment_title" form:"assignment_title"`
	AssignmentDescription string `json:"assignment_description" form:"assignment_description"`
	LoginCredentials      string `json:"login_credentials" form:"login_credentials"`
	Deadline              string `json:"deadline" form:"deadline"`
}

type chatFellowRequest struct {
	ClientName     string `json:"client_name" form:"client_name"`
	ClientEmail    string `json:"client_email" form:"client_email"`
	ClientPhone    string `json:"client_phone" form:"client_phone"`
	ProjectType    string `json:"project_type" form:"project_type"`
	Description    string `json:"description" form:"description"`
	TargetAudience string `json:"target_audience" form:"target_audience"`
}

// projectCard 是作品集页面的一张卡片
type projectCard struct {
	db.Project
	CategoryName string
}

// ShowHome 渲染首页：服务、产品与最新项目
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()
	offerings, err := a.offerings.List(ctx, false)
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	products, err := a.products.List(ctx, false)
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	projects, err := a.projects.List(ctx, false)
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	if len(projects) > homeProjectLimit {
		projects = projects[:homeProjectLimit]
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":    "Home",
		"services": offerings,
		"products": products,
		"projects": projects,
	})
}

// ShowServices 渲染服务列表
func (a *API) ShowServices(c *gin.Context) {
	offerings, err := a.offerings.List(c.Request.Context(), false)
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "services.html", gin.H{
		"title":    "Services",
		"services": offerings,
	})
}

// ShowPricing 渲染定价方案
func (a *API) ShowPricing(c *gin.Context) {
	plans, err := a.offerings.Plans(c.Request.Context())
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "pricing.html", gin.H{
		"title": "Pricing",
		"plans": plans,
	})
}

// ShowProducts 渲染产品列表
func (a *API) ShowProducts(c *gin.Context) {
	products, err := a.products.List(c.Request.Context(), false)
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "products.html", gin.H{
		"title":    "Products",
		"products": products,
	})
}

// ShowProjects 渲染作品集，可按 ?category= 过滤
func (a *API) ShowProjects(c *gin.Context) {
	ctx := c.Request.Context()
	projects, err := a.projects.List(ctx, false)
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	categories, err := a.projects.Categories(ctx)
	if err != nil {
		a.renderFailure(c, err)
		return
	}

	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	selected := strings.TrimSpace(c.Query("category"))

	cards := make([]projectCard, 0, len(projects))
	for _, project := range projects {
		card := projectCard{Project: project}
		if project.CategoryID != nil {
			card.CategoryName = names[*project.CategoryID]
			if selected != "" && *project.CategoryID != selected {
				continue
			}
		} else if selected != "" {
			continue
		}
		cards = append(cards, card)
	}

	a.renderHTML(c, http.StatusOK, "projects.html", gin.H{
		"title":      "Projects",
		"projects":   cards,
		"categories": categories,
		"selected":   selected,
	})
}

// ShowAbout 渲染关于页面
func (a *API) ShowAbout(c *gin.Context) {
	offerings, err := a.offerings.List(c.Request.Context(), false)
	if err != nil {
		a.renderFailure(c, err)
		return
	}
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title":    "About",
		"services": offerings,
	})
}

// ShowContact 渲染联系页面，?service= 预填咨询的服务
func (a *API) ShowContact(c *gin.Context) {
	a.renderContact(c, http.StatusOK, gin.H{
		"form": contactRequest{Service: strings.TrimSpace(c.Query("service"))},
	})
}

// SubmitContact 保存联系表单，JSON 调用方得到 JSON 响应
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactRequest
	if err := bindPayload(c, &payload); err != nil {
		a.contactFailure(c, payload, invalidPayload(err))
		return
	}

	_, err := a.submissions.Submit(c.Request.Context(), service.SubmissionInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
		Service: payload.Service,
	})
	if err != nil {
		a.contactFailure(c, payload, err)
		return
	}

	const title, detail = "Message Sent!", "We'll get back to you as soon as possible."
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"message": title, "description": detail})
		return
	}
	a.renderContact(c, http.StatusOK, gin.H{
		"success": gin.H{"title": title, "description": detail},
		"form":    contactRequest{},
	})
}

func (a *API) contactFailure(c *gin.Context, payload contactRequest, err error) {
	const message = "Failed to send message. Please try again."
	if wantsJSON(c) {
		respondServiceError(c, err, message)
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
	}
	a.renderContact(c, status, gin.H{"error": message, "form": payload})
}

func (a *API) renderContact(c *gin.Context, status int, data gin.H) {
	ctx := c.Request.Context()
	dir, err := a.contacts.Directory(ctx)
	if err != nil {
		c.Error(err)
	}
	offerings, err := a.offerings.List(ctx, false)
	if err != nil {
		c.Error(err)
	}

	data["title"] = "Contact"
	data["contacts"] = dir.Grouped()
	data["services"] = offerings
	a.renderHTML(c, status, "contact.html", data)
}

// ShowApply 渲染加入申请表
func (a *API) ShowApply(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "apply.html", gin.H{
		"title": "Join our team",
		"form":  applicationRequest{},
	})
}

// SubmitApplication 保存加入申请
func (a *API) SubmitApplication(c *gin.Context) {
	var payload applicationRequest
	if err := bindPayload(c, &payload); err != nil {
		a.applicationFailure(c, payload, invalidPayload(err))
		return
	}

	_, err := a.applications.Submit(c.Request.Context(), service.ApplicationInput{
		FullName:     payload.FullName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Skills:       payload.Skills,
		Experience:   payload.Experience,
		PortfolioURL: payload.PortfolioURL,
	})
	if err != nil {
		a.applicationFailure(c, payload, err)
		return
	}

	const title, detail = "Application Submitted!", "We'll review your application and get back to you soon."
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"message": title, "description": detail})
		return
	}
	a.renderHTML(c, http.StatusOK, "apply.html", gin.H{
		"title":   "Join our team",
		"success": gin.H{"title": title, "description": detail},
		"form":    applicationRequest{},
	})
}

func (a *API) applicationFailure(c *gin.Context, payload applicationRequest, err error) {
	const message = "Failed to submit application. Please try again."
	if wantsJSON(c) {
		respondServiceError(c, err, message)
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
	}
	a.renderHTML(c, status, "apply.html", gin.H{
		"title": "Join our team",
		"error": message,
		"form":  payload,
	})
}

// SubmitStudentAssignment 接收学生作业请求
func (a *API) SubmitStudentAssignment(c *gin.Context) {
	var payload studentAssignmentRequest
	if !bindJSON(c, &payload, "Failed to submit request") {
		return
	}
	record, err := a.assignments.Submit(c.Request.Context(), service.StudentAssignmentInput{
		StudentName:           payload.StudentName,
		StudentEmail:          payload.StudentEmail,
		StudentPhone:          payload.StudentPhone,
		AssignmentTitle:       payload.AssignmentTitle,
		AssignmentDescription: payload.AssignmentDescription,
		LoginCredentials:      payload.LoginCredentials,
		Deadline:              payload.Deadline,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to submit request")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request submitted", "id": record.ID})
}

// SubmitChatFellowRequest 接收 Chat Fellow 项目请求
func (a *API) SubmitChatFellowRequest(c *gin.Context) {
	var payload chatFellowRequest
	if !bindJSON(c, &payload, "Failed to submit request") {
		return
	}
	record, err := a.chatFellows.Submit(c.Request.Context(), service.ChatFellowInput{
		ClientName:     payload.ClientName,
		ClientEmail:    payload.ClientEmail,
		ClientPhone:    payload.ClientPhone,
		ProjectType:    payload.ProjectType,
		Description:    payload.Description,
		TargetAudience: payload.TargetAudience,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to submit request")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request submitted", "id": record.ID})
}

// GetPublicContactInfo 返回全部联系方式与 WhatsApp 链接
func (a *API) GetPublicContactInfo(c *gin.Context) {
	dir, err := a.contacts.Directory(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load contact information")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":         dir.Items(),
		"whatsapp_link": a.siteView(c).WhatsAppLink,
	})
}

// GetPublicServices 返回可见服务
func (a *API) GetPublicServices(c *gin.Context) {
	offerings, err := a.offerings.List(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err, "Failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": offerings})
}

// GetPublicPricing 返回定价方案
func (a *API) GetPublicPricing(c *gin.Context) {
	plans, err := a.offerings.Plans(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load pricing")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetPublicProducts 返回可见产品
func (a *API) GetPublicProducts(c *gin.Context) {
	products, err := a.products.List(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetPublicProjects 返回可见项目
func (a *API) GetPublicProjects(c *gin.Context) {
	projects, err := a.projects.List(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err, "Failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// renderFailure 读取失败时渲染错误页
func (a *API) renderFailure(c *gin.Context, err error) {
	c.Error(err)
	a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{
		"title":   "Something went wrong",
		"message": "We couldn't load this page. Please try again later.",
	})
}
