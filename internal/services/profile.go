package services

import (
	"errors"
	"time"

	"github.com/ctgula/vibe-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type ProfileUpdate struct {
	Username            *string `json:"username,omitempty"`
	DisplayName         *string `json:"display_name,omitempty"`
	AvatarURL           *string `json:"avatar_url,omitempty"`
	Bio                 *string `json:"bio,omitempty"`
	OnboardingCompleted *bool   `json:"onboarding_completed,omitempty"`
}

func (s *ProfileService) GetProfile(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile mutates the caller's own row. Guest updates are scoped by
// (id, is_guest) so a forged guest token can never touch a registered
// profile.
func (s *ProfileService) UpdateProfile(id uuid.UUID, isGuest bool, update ProfileUpdate) (*models.Profile, error) {
	query := s.db.Where("id = ?", id)
	if isGuest {
		query = query.Where("is_guest = ?", true)
	}

	var profile models.Profile
	if err := query.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if update.Username != nil && *update.Username != profile.Username {
		var existing models.Profile
		if err := s.db.Where("username = ? AND id != ?", *update.Username, id).First(&existing).Error; err == nil {
			return nil, ErrUsernameTaken
		}
		profile.Username = *update.Username
	}
	if update.DisplayName != nil {
		profile.DisplayName = *update.DisplayName
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.OnboardingCompleted != nil {
		profile.OnboardingCompleted = *update.OnboardingCompleted
	}
	profile.UpdatedAt = time.Now()

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
