package models

type Contact struct {
	BaseModel

	ProfileID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"profile_id"`
	Email     string `gorm:"not null" json:"email"`

	// Relationships
	Socials []Social `gorm:"foreignKey:ContactID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"social"`
}

// Social rows are replaced wholesale on every contact update, so their ids
// are not stable across edits.
type Social struct {
	BaseModel

	ContactID string `gorm:"type:varchar(36);not null;index" json:"-"`
	Name      string `gorm:"not null" json:"name"`
	URL       string `gorm:"not null" json:"url"`
	Icon      string `gorm:"not null" json:"icon"`
	Navbar    bool   `gorm:"not null;default:false" json:"navbar"`
	Position  int    `gorm:"not null;default:0" json:"-"`
}
