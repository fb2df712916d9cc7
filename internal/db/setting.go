package db

// Setting 存储后台可配置的键值对。
type Setting struct {
	Base
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

const (
	// SettingKeySiteName 表示站点名称。
	SettingKeySiteName = "site_name"
	// SettingKeyWhatsAppFallback 表示未配置联系方式时使用的 WhatsApp 号码。
	SettingKeyWhatsAppFallback = "whatsapp_fallback"
)
