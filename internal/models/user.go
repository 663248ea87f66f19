package models

import "time"

type User struct {
	BaseModel

	Name          string `gorm:"not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null" json:"-"`
	EmailVerified *time.Time

	// Relationships
	Subdomains []Subdomain `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
