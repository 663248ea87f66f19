package models

type Subdomain struct {
	BaseModel

	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	UserID string `gorm:"type:varchar(36);not null;index" json:"user_id"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Profile *Profile `gorm:"foreignKey:SubdomainID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"profile,omitempty"`
}
