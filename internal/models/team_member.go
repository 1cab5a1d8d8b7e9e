package models

import "time"

// TeamMember is the stored-row backing for the member directory. The current
// data model derives members from profiles instead; this table remains for
// deployments running with MEMBER_SOURCE=table.
type TeamMember struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	FirstName string    `gorm:"not null" json:"first_name"`
	Emoji     string    `gorm:"not null;default:👤" json:"emoji"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
