package models

import "time"

type Profile struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Emoji        string    `gorm:"not null;default:👤" json:"emoji"`
	Role         string    `gorm:"not null;default:member" json:"role"` // "admin", "member"
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	CreatedTasks []Task `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
