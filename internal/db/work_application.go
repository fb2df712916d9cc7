package db

import "gorm.io/datatypes"

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// WorkApplication 记录前台 /apply 提交的加入申请
type WorkApplication struct {
	Base
	FullName     string                      `gorm:"size:200;not null" json:"full_name"`
	Email        string                      `gorm:"size:255;not null" json:"email"`
	Phone        string                      `gorm:"size:50" json:"phone"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Experience   string                      `gorm:"type:text" json:"experience"`
	PortfolioURL string                      `gorm:"size:500" json:"portfolio_url"`
	Status       string                      `gorm:"size:20;index;default:pending" json:"status"`
	AdminNotes   string                      `gorm:"type:text" json:"admin_notes"`
}
