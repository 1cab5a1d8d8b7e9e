package store

import (
	"context"
	"fmt"

	"github.com/synctask-dev/synctask/internal/models"
	"gorm.io/gorm"
)

// MemberDirectory answers "who is on the team". Two backings exist: the
// team_members table (earlier data model) and a projection of profiles (the
// current one, where member id equals profile id). Picking one at
// construction keeps the call sites free of mode branches.
type MemberDirectory interface {
	// Members returns active members ordered by name ascending.
	Members(ctx context.Context) ([]TeamMemberView, error)
	// MembersByID resolves a set of member ids; unknown ids are skipped.
	MembersByID(ctx context.Context, ids []uint) ([]TeamMemberView, error)
}

type ProfileDirectory struct {
	db *gorm.DB
}

func NewProfileDirectory(database *gorm.DB) *ProfileDirectory {
	return &ProfileDirectory{db: database}
}

func (d *ProfileDirectory) Members(ctx context.Context) ([]TeamMemberView, error) {
	var profiles []models.Profile

	if err := d.db.WithContext(ctx).Order("full_name ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}

	members := make([]TeamMemberView, 0, len(profiles))

	for _, profile := range profiles {
		members = append(members, ProfileToTeamMember(profile))
	}

	return members, nil
}

func (d *ProfileDirectory) MembersByID(ctx context.Context, ids []uint) ([]TeamMemberView, error) {
	if len(ids) == 0 {
		return []TeamMemberView{}, nil
	}

	var profiles []models.Profile

	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("fetch profiles by id: %w", err)
	}

	members := make([]TeamMemberView, 0, len(profiles))

	for _, profile := range profiles {
		members = append(members, ProfileToTeamMember(profile))
	}

	return members, nil
}

type TeamTable struct {
	db *gorm.DB
}

func NewTeamTable(database *gorm.DB) *TeamTable {
	return &TeamTable{db: database}
}

func (t *TeamTable) Members(ctx context.Context) ([]TeamMemberView, error) {
	var rows []models.TeamMember

	if err := t.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch team members: %w", err)
	}

	members := make([]TeamMemberView, 0, len(rows))

	for _, row := range rows {
		members = append(members, memberView(row))
	}

	return members, nil
}

func (t *TeamTable) MembersByID(ctx context.Context, ids []uint) ([]TeamMemberView, error) {
	if len(ids) == 0 {
		return []TeamMemberView{}, nil
	}

	var rows []models.TeamMember

	if err := t.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch team members by id: %w", err)
	}

	members := make([]TeamMemberView, 0, len(rows))

	for _, row := range rows {
		members = append(members, memberView(row))
	}

	return members, nil
}

// Table-mode member management. These always address the team_members table;
// in profile mode members are managed through profiles instead and the
// corresponding routes are not registered.

func (s *Store) CreateTeamMember(ctx context.Context, name, firstName, emoji string) (models.TeamMember, error) {
	member := models.TeamMember{
		Name:      name,
		FirstName: firstName,
		Emoji:     emoji,
		IsActive:  true,
	}

	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return models.TeamMember{}, fmt.Errorf("create team member: %w", err)
	}

	return member, nil
}

type TeamMemberUpdates struct {
	Name      *string
	FirstName *string
	Emoji     *string
	IsActive  *bool
	UserID    *uint
}

func (s *Store) UpdateTeamMember(ctx context.Context, memberID uint, updates TeamMemberUpdates) (models.TeamMember, error) {
	fields := make(map[string]interface{})

	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.FirstName != nil {
		fields["first_name"] = *updates.FirstName
	}
	if updates.Emoji != nil {
		fields["emoji"] = *updates.Emoji
	}
	if updates.IsActive != nil {
		fields["is_active"] = *updates.IsActive
	}
	if updates.UserID != nil {
		fields["user_id"] = *updates.UserID
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", memberID).Updates(fields).Error; err != nil {
			return models.TeamMember{}, fmt.Errorf("update team member: %w", err)
		}
	}

	var member models.TeamMember

	if err := s.db.WithContext(ctx).First(&member, memberID).Error; err != nil {
		return models.TeamMember{}, fmt.Errorf("reload team member: %w", err)
	}

	return member, nil
}

func (s *Store) DeleteTeamMember(ctx context.Context, memberID uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.TeamMember{}, memberID).Error; err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}

	return nil
}
