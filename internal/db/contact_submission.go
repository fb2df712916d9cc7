package db

// ContactSubmission 记录访客通过联系表单发送的消息
type ContactSubmission struct {
	Base
	Name       string `gorm:"size:200;not null" json:"name"`
	Email      string `gorm:"size:255;not null" json:"email"`
	Subject    string `gorm:"size:255;not null" json:"subject"`
	Message    string `gorm:"type:text;not null" json:"message"`
	Service    string `gorm:"size:200" json:"service"`
	Read       bool   `gorm:"index" json:"read"`
	AdminNotes string `gorm:"type:text" json:"admin_notes"`
}
