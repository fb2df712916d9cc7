package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agencysite/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteSettings 描述后台可配置的站点信息。
type SiteSettings struct {
	SiteName         string `json:"site_name"`
	WhatsAppFallback string `json:"whatsapp_fallback"`
}

// SettingService 提供站点设置的读取与更新能力。
type SettingService struct {
	db              *gorm.DB
	defaultSiteName string
}

// NewSettingService 构造 SettingService，defaultSiteName 在未保存站点名称时使用。
func NewSettingService(gdb *gorm.DB, defaultSiteName string) *SettingService {
	return &SettingService{db: gdb, defaultSiteName: defaultSiteName}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyWhatsAppFallback,
}

// Get 读取站点设置，未设置时返回默认值。
func (s *SettingService) Get(ctx context.Context) (SiteSettings, error) {
	result := SiteSettings{SiteName: s.defaultSiteName, WhatsAppFallback: DefaultWhatsAppNumber}

	var records []db.Setting
	if err := s.db.WithContext(ctx).Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		if value == "" {
			continue
		}
		switch record.Key {
		case db.SettingKeySiteName:
			result.SiteName = value
		case db.SettingKeyWhatsAppFallback:
			result.WhatsAppFallback = value
		}
	}
	return result, nil
}

// Update 保存站点设置，空值会回退到默认值。
func (s *SettingService) Update(ctx context.Context, input SiteSettings) (SiteSettings, error) {
	fallback := strings.TrimSpace(input.WhatsAppFallback)
	if fallback != "" && DigitsOnly(fallback) == "" {
		return SiteSettings{}, invalidf("whatsapp fallback must contain digits")
	}

	values := map[string]string{
		db.SettingKeySiteName:         strings.TrimSpace(input.SiteName),
		db.SettingKeyWhatsAppFallback: fallback,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			if err := upsertSetting(tx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, err
	}
	return s.Get(ctx)
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.Setting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
