package store

import (
	"context"
	"fmt"
	"log"

	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/types"
	"gorm.io/datatypes"
)

func (s *Store) GetLeaves(ctx context.Context) ([]LeaveWithMember, error) {
	var leaves []models.Leave

	if err := s.db.WithContext(ctx).Order("leave_date ASC").Find(&leaves).Error; err != nil {
		return nil, fmt.Errorf("fetch leaves: %w", err)
	}

	return s.resolveLeaves(ctx, leaves)
}

func (s *Store) GetLeavesForDate(ctx context.Context, date datatypes.Date) ([]LeaveWithMember, error) {
	var leaves []models.Leave

	if err := s.db.WithContext(ctx).Where("leave_date = ?", date).Find(&leaves).Error; err != nil {
		return nil, fmt.Errorf("fetch leaves for date: %w", err)
	}

	return s.resolveLeaves(ctx, leaves)
}

func (s *Store) resolveLeaves(ctx context.Context, leaves []models.Leave) ([]LeaveWithMember, error) {
	memberIDSet := make(map[uint]struct{}, len(leaves))
	memberIDs := make([]uint, 0, len(leaves))

	for _, leave := range leaves {
		if _, seen := memberIDSet[leave.TeamMemberID]; seen {
			continue
		}
		memberIDSet[leave.TeamMemberID] = struct{}{}
		memberIDs = append(memberIDs, leave.TeamMemberID)
	}

	members, err := s.members.MembersByID(ctx, memberIDs)

	if err != nil {
		return nil, err
	}

	return joinLeaves(leaves, members), nil
}

// CreateLeave inserts a leave row. A duplicate (member, date) pair is an
// expected outcome under concurrent toggles, not an error: it is logged and
// reported as a nil row with no error.
func (s *Store) CreateLeave(ctx context.Context, memberID uint, date datatypes.Date, createdBy uint, leaveType string) (*models.Leave, error) {
	if leaveType == "" {
		leaveType = types.LeaveFullDay
	}

	leave := models.Leave{
		TeamMemberID: memberID,
		LeaveDate:    date,
		LeaveType:    leaveType,
		CreatedBy:    createdBy,
	}

	if err := s.db.WithContext(ctx).Create(&leave).Error; err != nil {
		if isDuplicateKey(err) {
			log.Printf("Leave already exists for member %d on %s", memberID, types.FormatDate(date))
			return nil, nil
		}
		return nil, fmt.Errorf("create leave: %w", err)
	}

	return &leave, nil
}

func (s *Store) DeleteLeave(ctx context.Context, leaveID uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Leave{}, leaveID).Error; err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}

	return nil
}

// DeleteLeavesForMemberOnDate deletes by the composite key. Deleting a row
// that is not there succeeds; the operation is idempotent.
func (s *Store) DeleteLeavesForMemberOnDate(ctx context.Context, memberID uint, date datatypes.Date) error {
	if err := s.db.WithContext(ctx).
		Where("team_member_id = ? AND leave_date = ?", memberID, date).
		Delete(&models.Leave{}).Error; err != nil {
		return fmt.Errorf("delete leaves for member on date: %w", err)
	}

	return nil
}
