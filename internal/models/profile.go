package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username            string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	DisplayName         string    `gorm:"size:100" json:"display_name"`
	AvatarURL           string    `gorm:"size:255" json:"avatar_url,omitempty"`
	Bio                 string    `gorm:"size:500" json:"bio,omitempty"`
	Email               string    `gorm:"size:255;index" json:"-"`
	PasswordHash        string    `gorm:"size:255" json:"-"`
	IsGuest             bool      `gorm:"not null;default:false" json:"is_guest"`
	OnboardingCompleted bool      `gorm:"not null;default:false" json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
