package services

import (
	"encoding/json"
	"time"

	"github.com/ctgula/vibe-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(userID uuid.UUID, notificationType string, content map[string]interface{}) error {
	var payload datatypes.JSON
	if len(content) > 0 {
		raw, err := json.Marshal(content)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}

	notification := models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notificationType,
		Content:   payload,
		CreatedAt: time.Now(),
	}
	return s.db.Create(&notification).Error
}

func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(id, userID uuid.UUID) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
