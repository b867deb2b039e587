package services

import (
	"encoding/json"
	"time"

	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService appends to the per-room activity feed. Writes are
// best-effort with a log-and-drop failure policy: a failed append never
// blocks or fails the state change that caused it.
type ActivityService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityService(db *gorm.DB, log *logger.Logger) *ActivityService {
	return &ActivityService{db: db, log: log}
}

func (s *ActivityService) Record(roomID uuid.UUID, userID *uuid.UUID, action string, details map[string]interface{}) {
	var payload datatypes.JSON
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			s.log.Warnw("activity details dropped", "action", action, "error", err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	entry := models.ActivityLog{
		ID:        uuid.New(),
		RoomID:    roomID,
		UserID:    userID,
		Action:    action,
		Details:   payload,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warnw("activity log write dropped", "room_id", roomID, "action", action, "error", err)
	}
}

func (s *ActivityService) RecentForRoom(roomID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []models.ActivityLog
	if err := s.db.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
