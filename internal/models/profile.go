package models

import "gorm.io/datatypes"

type Profile struct {
	BaseModel

	SubdomainID  string                      `gorm:"type:varchar(36);not null;uniqueIndex" json:"subdomain_id"`
	Name         string                      `gorm:"not null" json:"name"`
	Initials     string                      `gorm:"size:3;not null" json:"initials"`
	URL          string                      `gorm:"not null" json:"url"`
	Location     string                      `gorm:"not null" json:"location"`
	LocationLink string                      `gorm:"not null" json:"location_link"`
	Description  string                      `gorm:"not null" json:"description"`
	Summary      string                      `gorm:"type:text;not null" json:"summary"` // markdown
	Avatar       string                      `gorm:"not null" json:"avatar"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`

	// Relationships
	Contact  *Contact  `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"contact,omitempty"`
	Works    []Work    `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"works"`
	Projects []Project `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"projects"`
}
