package db

import "gorm.io/datatypes"

// Category groups projects in the portfolio.
type Category struct {
	Base
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
}

// Project 定义作品集项目
// Link 保存外部演示地址，沿用 vercel_link 列名
type Project struct {
	Base
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	ImageURL    string                      `gorm:"size:500" json:"image_url"`
	Link        string                      `gorm:"column:vercel_link;size:500" json:"vercel_link"`
	Visible     bool                        `gorm:"index" json:"visible"`
	CategoryID  *string                     `gorm:"size:36;index" json:"category_id"`
	Category    *Category                   `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
}
