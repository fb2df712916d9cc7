package db

// ContactInformation 保存站点各处展示的联系方式
// Key 唯一，例如 email/phone/whatsapp/facebook
// Category 用于后台分组与前台筛选
type ContactInformation struct {
	Base
	Key      string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value    string `gorm:"size:255;not null" json:"value"`
	Label    string `gorm:"size:100;not null" json:"label"`
	Category string `gorm:"size:50;not null;default:general" json:"category"`
}

// TableName 返回自定义表名
func (ContactInformation) TableName() string {
	return "contact_information"
}

const (
	// ContactKeyWhatsApp 对应悬浮 WhatsApp 按钮使用的号码
	ContactKeyWhatsApp = "whatsapp"
	// ContactKeyEmail 对应页脚与联系页展示的邮箱
	ContactKeyEmail = "email"
	// ContactKeyPhone 对应页脚与联系页展示的电话
	ContactKeyPhone = "phone"
)
