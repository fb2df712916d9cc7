package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/agencysite/internal/store"
	"gorm.io/gorm"
)

// ContactInfoService 负责维护站点展示的联系方式
// 前台通过 Directory 按 key 或分类读取，后台负责增删改
type ContactInfoService struct {
	Resource[db.ContactInformation]
}

// NewContactInfoService 构造 ContactInfoService，列表按分类排序
func NewContactInfoService(gdb *gorm.DB) *ContactInfoService {
	return &ContactInfoService{
		Resource: NewResource[db.ContactInformation](gdb, store.Asc("category"), store.Asc("key")),
	}
}

// ContactInfoInput 描述创建或更新联系方式时可设置的字段
type ContactInfoInput struct {
	Key      string
	Value    string
	Label    string
	Category string
}

// ContactDirectory 是一次读取的联系方式快照，提供同步查询
type ContactDirectory struct {
	items []db.ContactInformation
}

// NewContactDirectory wraps already loaded rows.
func NewContactDirectory(items []db.ContactInformation) ContactDirectory {
	return ContactDirectory{items: items}
}

// Items 返回全部条目
func (d ContactDirectory) Items() []db.ContactInformation {
	return d.items
}

// ByKey 返回 key 对应的值，不存在时返回空字符串
func (d ContactDirectory) ByKey(key string) string {
	for _, item := range d.items {
		if item.Key == key {
			return item.Value
		}
	}
	return ""
}

// ByKeyOr 同 ByKey，缺失时返回 fallback
func (d ContactDirectory) ByKeyOr(key, fallback string) string {
	if value := d.ByKey(key); value != "" {
		return value
	}
	return fallback
}

// ByCategory 返回指定分类下的条目
func (d ContactDirectory) ByCategory(category string) []db.ContactInformation {
	var out []db.ContactInformation
	for _, item := range d.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// ContactGroup 是后台按分类分组展示的一组条目
type ContactGroup struct {
	Category string                  `json:"category"`
	Items    []db.ContactInformation `json:"items"`
}

// Grouped 按首次出现的顺序对分类分组
func (d ContactDirectory) Grouped() []ContactGroup {
	var groups []ContactGroup
	index := map[string]int{}
	for _, item := range d.items {
		pos, ok := index[item.Category]
		if !ok {
			pos = len(groups)
			index[item.Category] = pos
			groups = append(groups, ContactGroup{Category: item.Category})
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}
	return groups
}

// WhatsAppNumber 返回已保存的 whatsapp 号码，没有时依次退回 fallback 和 DefaultWhatsAppNumber
func (d ContactDirectory) WhatsAppNumber(fallback string) string {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultWhatsAppNumber
	}
	return d.ByKeyOr(db.ContactKeyWhatsApp, fallback)
}

// WhatsAppLink 使用 WhatsAppNumber 的结果生成链接
func (d ContactDirectory) WhatsAppLink(fallback, text string) string {
	return WhatsAppLink(d.WhatsAppNumber(fallback), text)
}

// Directory 读取全部联系方式
func (s *ContactInfoService) Directory(ctx context.Context) (ContactDirectory, error) {
	items, err := s.All(ctx)
	if err != nil {
		return ContactDirectory{}, fmt.Errorf("load contact directory: %w", err)
	}
	return NewContactDirectory(items), nil
}

// Create 新建联系方式，key 需唯一
func (s *ContactInfoService) Create(ctx context.Context, input ContactInfoInput) (*db.ContactInformation, error) {
	item, err := normalizeContactInfo(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.Count(ctx, store.Eq("key", item.Key))
	if err != nil {
		return nil, fmt.Errorf("check contact key: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: key %q", ErrDuplicate, item.Key)
	}

	if err := s.insert(ctx, &item); err != nil {
		return nil, fmt.Errorf("create contact information: %w", err)
	}
	return &item, nil
}

// Update 更新全部字段
func (s *ContactInfoService) Update(ctx context.Context, id string, input ContactInfoInput) (*db.ContactInformation, error) {
	item, err := normalizeContactInfo(input)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Key != item.Key {
		taken, err := s.Count(ctx, store.Eq("key", item.Key))
		if err != nil {
			return nil, fmt.Errorf("check contact key: %w", err)
		}
		if taken > 0 {
			return nil, fmt.Errorf("%w: key %q", ErrDuplicate, item.Key)
		}
	}

	return s.update(ctx, id, map[string]interface{}{
		"key":      item.Key,
		"value":    item.Value,
		"label":    item.Label,
		"category": item.Category,
	})
}

// UpdateValue 仅更新值，对应后台行内编辑
func (s *ContactInfoService) UpdateValue(ctx context.Context, id, value string) (*db.ContactInformation, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, invalidf("value is required")
	}
	return s.update(ctx, id, map[string]interface{}{"value": trimmed})
}

func normalizeContactInfo(input ContactInfoInput) (db.ContactInformation, error) {
	item := db.ContactInformation{
		Key:      strings.ToLower(strings.TrimSpace(input.Key)),
		Value:    strings.TrimSpace(input.Value),
		Label:    strings.TrimSpace(input.Label),
		Category: strings.ToLower(strings.TrimSpace(input.Category)),
	}
	if item.Category == "" {
		item.Category = "general"
	}
	if err := required("key", item.Key, "value", item.Value, "label", item.Label); err != nil {
		return db.ContactInformation{}, err
	}
	return item, nil
}
