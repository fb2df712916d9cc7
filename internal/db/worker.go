package db

import "gorm.io/datatypes"

const (
	WorkerStatusActive   = "active"
	WorkerStatusInactive = "inactive"
)

// Worker 定义可被分配任务的协作者
// UserID 关联可登录的账号，可为空
type Worker struct {
	Base
	FullName string                      `gorm:"size:200;not null" json:"full_name"`
	Email    string                      `gorm:"size:255;not null" json:"email"`
	Phone    string                      `gorm:"size:50" json:"phone"`
	Skills   datatypes.JSONSlice[string] `json:"skills"`
	Status   string                      `gorm:"size:20;index;default:active" json:"status"`
	UserID   *string                     `gorm:"size:36;index" json:"user_id"`
}
