package services

import (
	"errors"
	"time"

	"github.com/ctgula/vibe-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

func (s *RoomService) CreateRoom(creatorID uuid.UUID, name, description string, isPublic bool) (*models.Room, error) {
	var creator models.Profile
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	room := models.Room{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
		IsActive:    true,
		CreatedBy:   creatorID,
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetRoom(roomID uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) ListPublicRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Where("is_public = ? AND is_active = ?", true, true).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) CloseRoom(roomID, callerID uuid.UUID) error {
	var room models.Room
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if room.CreatedBy != callerID {
		return ErrNotCreator
	}

	room.IsActive = false
	room.UpdatedAt = time.Now()
	if err := s.db.Save(&room).Error; err != nil {
		return err
	}

	// Everyone still marked active in a closed room is stale by definition.
	return s.db.Model(&models.Participant{}).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}
