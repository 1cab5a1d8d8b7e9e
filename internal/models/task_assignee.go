package models

import "time"

// TaskAssignee links a task to a team member. The member side carries no SQL
// constraint because its target table depends on the configured member source.
type TaskAssignee struct {
	TaskID       uint      `gorm:"primaryKey;autoIncrement:false" json:"task_id"`
	TeamMemberID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"team_member_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
