package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string        `gorm:"size:100;not null" json:"name"`
	Description  string        `gorm:"size:500" json:"description,omitempty"`
	IsPublic     bool          `gorm:"not null;default:true" json:"is_public"`
	IsActive     bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedBy    uuid.UUID     `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator      Profile       `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"-"`
	Participants []Participant `gorm:"foreignKey:RoomID" json:"participants,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
