package store

import (
	"strings"
	"time"

	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/types"
)

type TeamMemberView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	Emoji     string `json:"emoji"`
	IsActive  bool   `json:"is_active"`
}

type TaskWithAssignees struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Deadline    *string          `json:"deadline"`
	CreatedBy   uint             `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Assignees   []TeamMemberView `json:"assignees"`
}

type LeaveWithMember struct {
	ID           uint           `json:"id"`
	TeamMemberID uint           `json:"team_member_id"`
	LeaveDate    string         `json:"leave_date"`
	LeaveType    string         `json:"leave_type"`
	CreatedBy    uint           `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	Member       TeamMemberView `json:"team_member"`
}

// ProfileToTeamMember projects a profile into the member shape used across
// the board. The first name is everything up to the first space; a
// single-word name maps to itself. Person filters rely on this derivation
// being deterministic.
func ProfileToTeamMember(profile models.Profile) TeamMemberView {
	firstName := profile.FullName

	if idx := strings.Index(profile.FullName, " "); idx >= 0 {
		firstName = profile.FullName[:idx]
	}

	return TeamMemberView{
		ID:        profile.ID,
		Name:      profile.FullName,
		FirstName: firstName,
		Emoji:     profile.Emoji,
		IsActive:  true,
	}
}

func memberView(member models.TeamMember) TeamMemberView {
	return TeamMemberView{
		ID:        member.ID,
		Name:      member.Name,
		FirstName: member.FirstName,
		Emoji:     member.Emoji,
		IsActive:  member.IsActive,
	}
}

func taskView(task models.Task, assignees []TeamMemberView) TaskWithAssignees {
	var deadline *string

	if task.Deadline != nil {
		formatted := types.FormatDate(*task.Deadline)
		deadline = &formatted
	}

	if assignees == nil {
		assignees = []TeamMemberView{}
	}

	return TaskWithAssignees{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Deadline:    deadline,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Assignees:   assignees,
	}
}

// groupAssignees buckets join rows by task id. Rows referencing a member
// missing from the directory are dropped rather than failing the batch.
func groupAssignees(rows []models.TaskAssignee, members []TeamMemberView) map[uint][]TeamMemberView {
	byID := make(map[uint]TeamMemberView, len(members))

	for _, member := range members {
		byID[member.ID] = member
	}

	grouped := make(map[uint][]TeamMemberView)

	for _, row := range rows {
		member, ok := byID[row.TeamMemberID]
		if !ok {
			continue
		}
		grouped[row.TaskID] = append(grouped[row.TaskID], member)
	}

	return grouped
}

// joinLeaves resolves each leave's member. A leave whose member cannot be
// resolved (deleted or inactive) is silently dropped; the calendar favors
// availability over strictness.
func joinLeaves(leaves []models.Leave, members []TeamMemberView) []LeaveWithMember {
	byID := make(map[uint]TeamMemberView, len(members))

	for _, member := range members {
		byID[member.ID] = member
	}

	result := make([]LeaveWithMember, 0, len(leaves))

	for _, leave := range leaves {
		member, ok := byID[leave.TeamMemberID]
		if !ok {
			continue
		}

		result = append(result, LeaveWithMember{
			ID:           leave.ID,
			TeamMemberID: leave.TeamMemberID,
			LeaveDate:    types.FormatDate(leave.LeaveDate),
			LeaveType:    leave.LeaveType,
			CreatedBy:    leave.CreatedBy,
			CreatedAt:    leave.CreatedAt,
			Member:       member,
		})
	}

	return result
}
