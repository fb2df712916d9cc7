package db

import "gorm.io/datatypes"

// Product 定义产品展示模型
type Product struct {
	Base
	Title        string                      `gorm:"size:200;not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Icon         string                      `gorm:"size:50" json:"icon"`
	ImageURL     string                      `gorm:"size:500" json:"image_url"`
	Features     datatypes.JSONSlice[string] `json:"features"`
	Visible      bool                        `gorm:"index" json:"visible"`
	DisplayOrder int                         `gorm:"default:0" json:"display_order"`
}
