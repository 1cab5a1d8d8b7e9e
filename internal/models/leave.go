package models

import (
	"time"

	"gorm.io/datatypes"
)

// Leave has no DeletedAt: a soft-delete tombstone would keep occupying the
// (team_member_id, leave_date) unique index and block re-adding a leave.
type Leave struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	TeamMemberID uint           `gorm:"not null;uniqueIndex:idx_member_date" json:"team_member_id"`
	LeaveDate    datatypes.Date `gorm:"not null;uniqueIndex:idx_member_date;type:date" json:"leave_date"`
	LeaveType    string         `gorm:"not null;default:full_day" json:"leave_type"` // "full_day", "half_day_morning", "half_day_afternoon"
	CreatedBy    uint           `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
}
