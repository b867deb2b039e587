package models

import (
	"time"

	"github.com/google/uuid"
)

type Participant struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_participant_room_user,unique,priority:1;index:idx_participant_room_guest,unique,priority:1" json:"room_id"`
	UserID        *uuid.UUID `gorm:"type:uuid;index:idx_participant_room_user,unique,priority:2" json:"user_id,omitempty"`
	GuestID       *uuid.UUID `gorm:"type:uuid;index:idx_participant_room_guest,unique,priority:2" json:"guest_id,omitempty"`
	Role          string     `gorm:"size:20;not null;default:'listener'" json:"role"`
	IsHost        bool       `gorm:"not null;default:false" json:"is_host"`
	IsSpeaker     bool       `gorm:"not null;default:false" json:"is_speaker"`
	IsMuted       bool       `gorm:"not null;default:true" json:"is_muted"`
	HasRaisedHand bool       `gorm:"not null;default:false" json:"has_raised_hand"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	JoinedAt      time.Time  `json:"joined_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

const (
	RoleHost     = "host"
	RoleSpeaker  = "speaker"
	RoleListener = "listener"
)
