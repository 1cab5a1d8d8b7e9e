package store

import (
	"context"
	"fmt"

	"github.com/synctask-dev/synctask/internal/models"
)

func (s *Store) GetProfile(ctx context.Context, userID uint) (models.Profile, error) {
	var profile models.Profile

	if err := s.db.WithContext(ctx).First(&profile, userID).Error; err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}

	return profile, nil
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (models.Profile, error) {
	var profile models.Profile

	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile by email: %w", err)
	}

	return profile, nil
}

func (s *Store) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile

	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}

	return profiles, nil
}

// UpdateProfile sets the self-editable fields. Nil pointers leave the column
// untouched.
func (s *Store) UpdateProfile(ctx context.Context, userID uint, fullName, emoji *string) (models.Profile, error) {
	fields := make(map[string]interface{})

	if fullName != nil {
		fields["full_name"] = *fullName
	}
	if emoji != nil {
		fields["emoji"] = *emoji
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", userID).Updates(fields).Error; err != nil {
			return models.Profile{}, fmt.Errorf("update profile: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *Store) UpdateUserRole(ctx context.Context, userID uint, role string) (models.Profile, error) {
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", userID).Update("role", role).Error; err != nil {
		return models.Profile{}, fmt.Errorf("update role: %w", err)
	}

	return s.GetProfile(ctx, userID)
}

func (s *Store) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}
