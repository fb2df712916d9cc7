package handler

import (
	"context"
	"net/http"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/service"
	"github.com/gin-gonic/gin"
)

// offeringRequest 对应服务编辑表单，features 为多行文本，pricing 为 JSON 文本
type offeringRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Features     string `json:"features"`
	Pricing      string `json:"pricing"`
	LinkURL      string `json:"link_url"`
	Visible      *bool  `json:"visible"`
	DisplayOrder *int   `json:"display_order"`
}

func (r offeringRequest) toInput() service.OfferingInput {
	return service.OfferingInput{
		Title:        r.Title,
		Description:  r.Description,
		Icon:         r.Icon,
		Features:     r.Features,
		Pricing:      r.Pricing,
		LinkURL:      r.LinkURL,
		Visible:      r.Visible,
		DisplayOrder: r.DisplayOrder,
	}
}

type productRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	ImageURL     string `json:"image_url"`
	Features     string `json:"features"`
	Visible      *bool  `json:"visible"`
	DisplayOrder *int   `json:"display_order"`
}

func (r productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Title:        r.Title,
		Description:  r.Description,
		Icon:         r.Icon,
		ImageURL:     r.ImageURL,
		Features:     r.Features,
		Visible:      r.Visible,
		DisplayOrder: r.DisplayOrder,
	}
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Features    string `json:"features"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"vercel_link"`
	CategoryID  string `json:"category_id"`
	Visible     *bool  `json:"visible"`
}

func (r projectRequest) toInput() service.ProjectInput {
	return service.ProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Features:    r.Features,
		ImageURL:    r.ImageURL,
		Link:        r.Link,
		CategoryID:  r.CategoryID,
		Visible:     r.Visible,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// includeHidden 后台列表包含隐藏项
func includeHidden[T any](list func(context.Context, bool) ([]T, error)) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		return list(ctx, true)
	}
}

// toggleJSON 翻转 :id 的可见性
func toggleJSON(toggle func(context.Context, string) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		visible, err := toggle(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err, "Failed to update visibility")
			return
		}
		message := "Hidden from site"
		if visible {
			message = "Visible on site"
		}
		respondMessage(c, message, gin.H{"visible": visible})
	}
}

// ListServices 返回全部服务（含隐藏）
func (a *API) ListServices(c *gin.Context) {
	listJSON("services", "Failed to load services", includeHidden(a.offerings.List))(c)
}

// GetServiceForm 返回服务的编辑表单文本
func (a *API) GetServiceForm(c *gin.Context) {
	form, err := a.offerings.Form(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

// CreateService 新建服务
func (a *API) CreateService(c *gin.Context) {
	var payload offeringRequest
	if !bindJSON(c, &payload, "Failed to create service") {
		return
	}
	offering, err := a.offerings.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Service created", "service": offering})
}

// UpdateService 更新服务
func (a *API) UpdateService(c *gin.Context) {
	var payload offeringRequest
	if !bindJSON(c, &payload, "Failed to update service") {
		return
	}
	offering, err := a.offerings.Update(c.Request.Context(), c.Param("id"), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update service")
		return
	}
	respondMessage(c, "Service updated", gin.H{"service": offering})
}

// DeleteService 删除服务
func (a *API) DeleteService(c *gin.Context) {
	deleteJSON("Service deleted", "Failed to delete service", a.offerings.Delete)(c)
}

// ToggleService 切换服务可见性
func (a *API) ToggleService(c *gin.Context) {
	toggleJSON(a.offerings.ToggleVisibility)(c)
}

// ListProducts 返回全部产品（含隐藏）
func (a *API) ListProducts(c *gin.Context) {
	listJSON("products", "Failed to fetch products", includeHidden(a.products.List))(c)
}

// GetProductForm 返回产品的编辑表单
func (a *API) GetProductForm(c *gin.Context) {
	product, err := a.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": productForm(product)})
}

// CreateProduct 新建产品
func (a *API) CreateProduct(c *gin.Context) {
	var payload productRequest
	if !bindJSON(c, &payload, "Failed to create product") {
		return
	}
	product, err := a.products.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

// UpdateProduct 更新产品
func (a *API) UpdateProduct(c *gin.Context) {
	var payload productRequest
	if !bindJSON(c, &payload, "Failed to update product") {
		return
	}
	product, err := a.products.Update(c.Request.Context(), c.Param("id"), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update product")
		return
	}
	respondMessage(c, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct 删除产品
func (a *API) DeleteProduct(c *gin.Context) {
	deleteJSON("Product deleted successfully", "Failed to delete product", a.products.Delete)(c)
}

// ToggleProduct 切换产品可见性
func (a *API) ToggleProduct(c *gin.Context) {
	toggleJSON(a.products.ToggleVisibility)(c)
}

// ListProjects 返回全部项目（含隐藏）
func (a *API) ListProjects(c *gin.Context) {
	listJSON("projects", "Failed to load projects", includeHidden(a.projects.List))(c)
}

// GetProjectForm 返回项目的编辑表单
func (a *API) GetProjectForm(c *gin.Context) {
	project, err := a.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": projectForm(project)})
}

// CreateProject 新建项目
func (a *API) CreateProject(c *gin.Context) {
	var payload projectRequest
	if !bindJSON(c, &payload, "Failed to add project") {
		return
	}
	project, err := a.projects.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to add project")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Project added", "project": project})
}

// UpdateProject 更新项目
func (a *API) UpdateProject(c *gin.Context) {
	var payload projectRequest
	if !bindJSON(c, &payload, "Failed to update project") {
		return
	}
	project, err := a.projects.Update(c.Request.Context(), c.Param("id"), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update project")
		return
	}
	respondMessage(c, "Project updated", gin.H{"project": project})
}

// DeleteProject 删除项目
func (a *API) DeleteProject(c *gin.Context) {
	deleteJSON("Project deleted", "Failed to delete project", a.projects.Delete)(c)
}

// ToggleProject 切换项目可见性
func (a *API) ToggleProject(c *gin.Context) {
	toggleJSON(a.projects.ToggleVisibility)(c)
}

// ListCategories 返回项目分类
func (a *API) ListCategories(c *gin.Context) {
	listJSON("categories", "Failed to load categories", a.projects.Categories)(c)
}

// CreateCategory 新建项目分类
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryRequest
	if !bindJSON(c, &payload, "Failed to create category") {
		return
	}
	category, err := a.projects.CreateCategory(c.Request.Context(), payload.Name, payload.Description, payload.Icon)
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// DeleteCategory 删除分类，相关项目保留
func (a *API) DeleteCategory(c *gin.Context) {
	deleteJSON("Category deleted", "Failed to delete category", a.projects.DeleteCategory)(c)
}

func productForm(product *db.Product) productRequest {
	visible := product.Visible
	order := product.DisplayOrder
	return productRequest{
		Title:        product.Title,
		Description:  product.Description,
		Icon:         product.Icon,
		ImageURL:     product.ImageURL,
		Features:     service.JoinLines(product.Features),
		Visible:      &visible,
		DisplayOrder: &order,
	}
}

func projectForm(project *db.Project) projectRequest {
	visible := project.Visible
	form := projectRequest{
		Title:       project.Title,
		Description: project.Description,
		Features:    service.JoinLines(project.Features),
		ImageURL:    project.ImageURL,
		Link:        project.Link,
		Visible:     &visible,
	}
	if project.CategoryID != nil {
		form.CategoryID = *project.CategoryID
	}
	return form
}
