package models

import "gorm.io/datatypes"

type Project struct {
	BaseModel

	ProfileID    string                      `gorm:"type:varchar(36);not null;index" json:"profile_id"`
	Title        string                      `gorm:"not null" json:"title"`
	Href         string                      `gorm:"not null" json:"href"`
	Dates        string                      `gorm:"not null" json:"dates"`
	Active       bool                        `gorm:"not null;default:false" json:"active"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	Image        *string                     `json:"image"`
	Video        *string                     `json:"video"`

	// Relationships
	Links []Link `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"links"`
}

type Link struct {
	BaseModel

	ProjectID string `gorm:"type:varchar(36);not null;index" json:"-"`
	Type      string `gorm:"not null" json:"type"`
	Href      string `gorm:"not null" json:"href"`
	Position  int    `gorm:"not null;default:0" json:"-"`
}
