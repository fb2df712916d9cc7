package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OfferingService 管理服务页与定价页展示的服务
type OfferingService struct {
	Resource[db.ServiceOffering]
}

// NewOfferingService 构造 OfferingService，按 display_order 排序
func NewOfferingService(gdb *gorm.DB) *OfferingService {
	return &OfferingService{
		Resource: NewResource[db.ServiceOffering](gdb, store.Asc("display_order"), store.Asc("created_at")),
	}
}

// OfferingInput 对应后台表单：Features 为多行文本，Pricing 为价格方案 JSON
type OfferingInput struct {
	Title        string
	Description  string
	Icon         string
	Features     string
	Pricing      string
	LinkURL      string
	Visible      *bool
	DisplayOrder *int
}

// OfferingForm 是已保存服务回填到编辑表单时的形式
type OfferingForm struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Features     string `json:"features"`
	Pricing      string `json:"pricing"`
	LinkURL      string `json:"link_url"`
	Visible      bool   `json:"visible"`
	DisplayOrder int    `json:"display_order"`
}

// List 按展示顺序返回服务，includeHidden 为 true 时包含隐藏项
func (s *OfferingService) List(ctx context.Context, includeHidden bool) ([]db.ServiceOffering, error) {
	var (
		items []db.ServiceOffering
		err   error
	)
	if includeHidden {
		items, err = s.find(ctx)
	} else {
		items, err = s.find(ctx, store.Eq("visible", true))
	}
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

// WithPricing 返回至少带一个价格方案的可见服务
func (s *OfferingService) WithPricing(ctx context.Context) ([]db.ServiceOffering, error) {
	items, err := s.List(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]db.ServiceOffering, 0, len(items))
	for _, item := range items {
		if len(item.Pricing) > 0 {
			out = append(out, item)
		}
	}
	return out, nil
}

// Create 校验输入后新建服务，价格 JSON 在写库前解析
func (s *OfferingService) Create(ctx context.Context, input OfferingInput) (*db.ServiceOffering, error) {
	record, err := buildOffering(input)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &record, nil
}

// Update 覆盖服务的可编辑字段
func (s *OfferingService) Update(ctx context.Context, id string, input OfferingInput) (*db.ServiceOffering, error) {
	record, err := buildOffering(input)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, map[string]interface{}{
		"title":         record.Title,
		"description":   record.Description,
		"icon":          record.Icon,
		"features":      record.Features,
		"pricing":       record.Pricing,
		"link_url":      record.LinkURL,
		"visible":       record.Visible,
		"display_order": record.DisplayOrder,
	})
}

// ToggleVisibility 切换可见状态并返回新值
func (s *OfferingService) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !current.Visible
	if err := s.setField(ctx, id, "visible", next); err != nil {
		return false, err
	}
	return next, nil
}

// Form 将服务还原为编辑表单的值
func (s *OfferingService) Form(ctx context.Context, id string) (OfferingForm, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return OfferingForm{}, err
	}
	return OfferingForm{
		Title:        record.Title,
		Description:  record.Description,
		Icon:         record.Icon,
		Features:     JoinLines(record.Features),
		Pricing:      FormatPricing(record.Pricing),
		LinkURL:      record.LinkURL,
		Visible:      record.Visible,
		DisplayOrder: record.DisplayOrder,
	}, nil
}

func buildOffering(input OfferingInput) (db.ServiceOffering, error) {
	pricing, err := ParsePricing(input.Pricing)
	if err != nil {
		return db.ServiceOffering{}, err
	}

	record := db.ServiceOffering{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
		Features:    datatypes.JSONSlice[string](SplitLines(input.Features)),
		Pricing:     datatypes.JSONSlice[db.PricingTier](pricing),
		LinkURL:     strings.TrimSpace(input.LinkURL),
		Visible:     true,
	}
	if input.Visible != nil {
		record.Visible = *input.Visible
	}
	if input.DisplayOrder != nil {
		record.DisplayOrder = *input.DisplayOrder
	}

	if err := required("title", record.Title, "description", record.Description); err != nil {
		return db.ServiceOffering{}, err
	}
	if !validURL(record.LinkURL) {
		return db.ServiceOffering{}, invalidf("link_url must be an http(s) url")
	}
	return record, nil
}
