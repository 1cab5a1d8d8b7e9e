package models

import (
	"time"

	"gorm.io/datatypes"
)

type Task struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Status      string          `gorm:"not null;default:todo" json:"status"` // "todo", "working", "done"
	Deadline    *datatypes.Date `gorm:"type:date" json:"deadline"`
	CreatedBy   uint            `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Assignees []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
