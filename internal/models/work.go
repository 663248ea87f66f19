package models

import "gorm.io/datatypes"

type Work struct {
	BaseModel

	ProfileID   string                      `gorm:"type:varchar(36);not null;index" json:"profile_id"`
	Company     string                      `gorm:"not null" json:"company"`
	Href        string                      `gorm:"not null" json:"href"`
	Badges      datatypes.JSONSlice[string] `json:"badges"`
	Location    string                      `gorm:"not null" json:"location"`
	Title       string                      `gorm:"not null" json:"title"`
	Start       string                      `gorm:"not null" json:"start"`
	End         *string                     `json:"end"` // nil while the position is current
	Description string                      `gorm:"type:text;not null" json:"description"`
	LogoURL     *string                     `json:"logo_url"`
}
