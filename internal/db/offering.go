package db

import "gorm.io/datatypes"

// PricingTier describes one price plan attached to a service.
type PricingTier struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Period   string   `json:"period"`
	Features []string `json:"features"`
}

// ServiceOffering is a service listed on the services and pricing pages.
type ServiceOffering struct {
	Base
	Title        string                           `gorm:"size:200;not null" json:"title"`
	Description  string                           `gorm:"type:text;not null" json:"description"`
	Icon         string                           `gorm:"size:50" json:"icon"`
	Features     datatypes.JSONSlice[string]      `json:"features"`
	Visible      bool                             `gorm:"index" json:"visible"`
	DisplayOrder int                              `gorm:"default:0" json:"display_order"`
	Pricing      datatypes.JSONSlice[PricingTier] `json:"pricing"`
	LinkURL      string                           `gorm:"size:500" json:"link_url"`
}

// TableName keeps the historical table name.
func (ServiceOffering) TableName() string {
	return "services_offered"
}
