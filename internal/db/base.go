package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 是所有表共用的主键与时间戳字段。
// 删除为物理删除，因此不包含 DeletedAt。
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 在插入前生成 UUID 主键
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
