package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"room_id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string         `gorm:"size:50;not null" json:"action"`
	Details   datatypes.JSON `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

const (
	ActionJoined           = "joined"
	ActionLeft             = "left"
	ActionHandRaised       = "hand_raised"
	ActionHandApproved     = "hand_approved"
	ActionHandDismissed    = "hand_dismissed"
	ActionMuteChanged      = "mute_changed"
	ActionRoomClosed       = "room_closed"
	ActionPeerConnected    = "peer_connected"
	ActionPeerDisconnected = "peer_disconnected"
)
