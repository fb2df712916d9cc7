package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductService 负责产品的增删改查
type ProductService struct {
	Resource[db.Product]
}

// NewProductService 构造 ProductService，按 display_order 排序
func NewProductService(gdb *gorm.DB) *ProductService {
	return &ProductService{
		Resource: NewResource[db.Product](gdb, store.Asc("display_order"), store.Asc("created_at")),
	}
}

// ProductInput 表示创建或更新产品时可接受的字段
type ProductInput struct {
	Title        string
	Description  string
	Icon         string
	ImageURL     string
	Features     string
	Visible      *bool
	DisplayOrder *int
}

// List 返回产品列表，includeHidden 为 true 时包含隐藏项
func (s *ProductService) List(ctx context.Context, includeHidden bool) ([]db.Product, error) {
	filters := []store.Filter{}
	if !includeHidden {
		filters = append(filters, store.Eq("visible", true))
	}
	items, err := s.find(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*db.Product, error) {
	record, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &record, nil
}

// Update 覆盖产品的可编辑字段
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*db.Product, error) {
	record, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, map[string]interface{}{
		"title":         record.Title,
		"description":   record.Description,
		"icon":          record.Icon,
		"image_url":     record.ImageURL,
		"features":      record.Features,
		"visible":       record.Visible,
		"display_order": record.DisplayOrder,
	})
}

// ToggleVisibility 切换可见状态并返回新值
func (s *ProductService) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.setField(ctx, id, "visible", !current.Visible); err != nil {
		return false, err
	}
	return !current.Visible, nil
}

func buildProduct(input ProductInput) (db.Product, error) {
	record := db.Product{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Features:    datatypes.JSONSlice[string](SplitLines(input.Features)),
		Visible:     true,
	}
	if input.Visible != nil {
		record.Visible = *input.Visible
	}
	if input.DisplayOrder != nil {
		record.DisplayOrder = *input.DisplayOrder
	}
	if err := required("title", record.Title, "description", record.Description); err != nil {
		return db.Product{}, err
	}
	return record, nil
}

// ProjectService 管理作品集项目及其分类
type ProjectService struct {
	Resource[db.Project]
	categories Resource[db.Category]
}

// NewProjectService 构造 ProjectService，最新的排在前面
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{
		Resource:   NewResource[db.Project](gdb, store.Desc("created_at")),
		categories: NewResource[db.Category](gdb, store.Asc("name")),
	}
}

// ProjectInput 表示创建或更新项目时可接受的字段
type ProjectInput struct {
	Title       string
	Description string
	Features    string
	ImageURL    string
	Link        string
	CategoryID  string
	Visible     *bool
}

// List 返回项目列表，includeHidden 为 true 时包含隐藏项
func (s *ProjectService) List(ctx context.Context, includeHidden bool) ([]db.Project, error) {
	filters := []store.Filter{}
	if !includeHidden {
		filters = append(filters, store.Eq("visible", true))
	}
	items, err := s.find(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// Create 新建项目，CategoryID 需指向已存在的分类
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*db.Project, error) {
	record, err := s.buildProject(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &record, nil
}

// Update 覆盖项目的可编辑字段
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*db.Project, error) {
	record, err := s.buildProject(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, map[string]interface{}{
		"title":       record.Title,
		"description": record.Description,
		"features":    record.Features,
		"image_url":   record.ImageURL,
		"vercel_link": record.Link,
		"category_id": record.CategoryID,
		"visible":     record.Visible,
	})
}

// ToggleVisibility 切换可见状态并返回新值
func (s *ProjectService) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.setField(ctx, id, "visible", !current.Visible); err != nil {
		return false, err
	}
	return !current.Visible, nil
}

// Categories 按名称列出项目分类
func (s *ProjectService) Categories(ctx context.Context) ([]db.Category, error) {
	return s.categories.All(ctx)
}

// CreateCategory 新增项目分类，名称需唯一
func (s *ProjectService) CreateCategory(ctx context.Context, name, description, icon string) (*db.Category, error) {
	category := db.Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Icon:        strings.TrimSpace(icon),
	}
	if err := required("name", category.Name); err != nil {
		return nil, err
	}
	taken, err := s.categories.Count(ctx, store.Eq("name", category.Name))
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if taken > 0 {
		return nil, fmt.Errorf("%w: category %q", ErrDuplicate, category.Name)
	}
	if err := s.categories.insert(ctx, &category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// DeleteCategory 删除分类，相关项目保留但不再归属该分类
func (s *ProjectService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.Get(ctx, id); err != nil {
		return err
	}
	projects, err := s.find(ctx, store.Eq("category_id", id))
	if err != nil {
		return fmt.Errorf("find category projects: %w", err)
	}
	for _, project := range projects {
		if err := s.setField(ctx, project.ID, "category_id", nil); err != nil {
			return fmt.Errorf("detach category: %w", err)
		}
	}
	return s.categories.Delete(ctx, id)
}

func (s *ProjectService) buildProject(ctx context.Context, input ProjectInput) (db.Project, error) {
	record := db.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Features:    datatypes.JSONSlice[string](SplitLines(input.Features)),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Link:        strings.TrimSpace(input.Link),
		Visible:     true,
	}
	if input.Visible != nil {
		record.Visible = *input.Visible
	}
	if err := required("title", record.Title, "description", record.Description); err != nil {
		return db.Project{}, err
	}
	if !validURL(record.Link) {
		return db.Project{}, invalidf("link must be an http(s) url")
	}
	if categoryID := strings.TrimSpace(input.CategoryID); categoryID != "" {
		if _, err := s.categories.Get(ctx, categoryID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return db.Project{}, invalidf("unknown category")
			}
			return db.Project{}, err
		}
		record.CategoryID = &categoryID
	}
	return record, nil
}
