package services

import (
	"errors"
	"time"

	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identity names the caller inside a room: a registered user or an
// ephemeral guest, never both.
type Identity struct {
	UserID  *uuid.UUID
	GuestID *uuid.UUID
}

func UserIdentity(id uuid.UUID) Identity  { return Identity{UserID: &id} }
func GuestIdentity(id uuid.UUID) Identity { return Identity{GuestID: &id} }

func (i Identity) Validate() error {
	if (i.UserID == nil) == (i.GuestID == nil) {
		return ErrIdentityRequired
	}
	return nil
}

func (i Identity) ProfileID() uuid.UUID {
	if i.UserID != nil {
		return *i.UserID
	}
	if i.GuestID != nil {
		return *i.GuestID
	}
	return uuid.Nil
}

type JoinOptions struct {
	AsHost    bool
	AsSpeaker bool
	Muted     *bool
}

// ParticipantService keeps exactly one participant row per (room,
// identity) pair. Joins are a single atomic upsert against the unique
// (room_id, user_id) / (room_id, guest_id) indexes, so concurrent joins
// from the same identity land on one row instead of racing into
// duplicates.
type ParticipantService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParticipantService(db *gorm.DB, log *logger.Logger) *ParticipantService {
	return &ParticipantService{db: db, log: log}
}

func (s *ParticipantService) Join(roomID uuid.UUID, ident Identity, opts JoinOptions) (*models.Participant, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}

	var room models.Room
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomClosed
	}

	role := models.RoleListener
	if opts.AsSpeaker {
		role = models.RoleSpeaker
	}
	if opts.AsHost {
		role = models.RoleHost
	}
	muted := true
	if opts.Muted != nil {
		muted = *opts.Muted
	}
	now := time.Now()

	participant := models.Participant{
		ID:            uuid.New(),
		RoomID:        roomID,
		UserID:        ident.UserID,
		GuestID:       ident.GuestID,
		Role:          role,
		IsHost:        opts.AsHost,
		IsSpeaker:     opts.AsSpeaker || opts.AsHost,
		IsMuted:       muted,
		HasRaisedHand: false,
		IsActive:      true,
		JoinedAt:      now,
		UpdatedAt:     now,
	}

	conflictColumn := "user_id"
	if ident.GuestID != nil {
		conflictColumn = "guest_id"
	}
	// On rejoin the row keeps its earned standing: role, is_host and
	// is_speaker are set only on first insert, never overwritten. A host
	// reconnecting with default options stays host.
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "room_id"}, {Name: conflictColumn}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_muted":        participant.IsMuted,
			"has_raised_hand": false,
			"is_active":       true,
			"updated_at":      now,
		}),
	}).Create(&participant).Error
	if err != nil {
		s.log.Errorw("participant upsert failed", "room_id", roomID, "error", err)
		return nil, err
	}

	// Re-read so a rejoin returns the surviving row, not the throwaway
	// insert candidate.
	return s.find(roomID, ident)
}

func (s *ParticipantService) Leave(roomID uuid.UUID, ident Identity) (*models.Participant, error) {
	participant, err := s.findActive(roomID, ident)
	if err != nil {
		return nil, err
	}
	participant.IsActive = false
	participant.UpdatedAt = time.Now()
	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

// Heartbeat refreshes updated_at so the stale sweep keeps the caller
// alive.
func (s *ParticipantService) Heartbeat(roomID uuid.UUID, ident Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}
	res := s.identityQuery(roomID, ident).
		Where("is_active = ?", true).
		Update("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (s *ParticipantService) RaiseHand(roomID uuid.UUID, ident Identity) (*models.Participant, error) {
	participant, err := s.findActive(roomID, ident)
	if err != nil {
		return nil, err
	}
	participant.HasRaisedHand = true
	participant.UpdatedAt = time.Now()
	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

// DismissHand lowers a raised hand without any role change. Callers
// dismiss their own hand; hosts dismiss anyone's via DismissTarget.
func (s *ParticipantService) DismissHand(roomID uuid.UUID, ident Identity) (*models.Participant, error) {
	participant, err := s.findActive(roomID, ident)
	if err != nil {
		return nil, err
	}
	participant.HasRaisedHand = false
	participant.UpdatedAt = time.Now()
	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

// Approve promotes a raised hand to speaker. Host-only: there is no
// external row-level policy in front of this store, so the check lives
// here.
func (s *ParticipantService) Approve(roomID uuid.UUID, host Identity, target Identity) (*models.Participant, error) {
	if err := s.requireHost(roomID, host); err != nil {
		return nil, err
	}
	participant, err := s.findActive(roomID, target)
	if err != nil {
		return nil, err
	}
	participant.HasRaisedHand = false
	participant.IsSpeaker = true
	if participant.Role == models.RoleListener {
		participant.Role = models.RoleSpeaker
	}
	participant.UpdatedAt = time.Now()
	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *ParticipantService) DismissTarget(roomID uuid.UUID, host Identity, target Identity) (*models.Participant, error) {
	if err := s.requireHost(roomID, host); err != nil {
		return nil, err
	}
	return s.DismissHand(roomID, target)
}

func (s *ParticipantService) SetMuted(roomID uuid.UUID, ident Identity, muted bool) (*models.Participant, error) {
	participant, err := s.findActive(roomID, ident)
	if err != nil {
		return nil, err
	}
	participant.IsMuted = muted
	participant.UpdatedAt = time.Now()
	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *ParticipantService) ListActive(roomID uuid.UUID) ([]models.Participant, error) {
	var participants []models.Participant
	if err := s.db.Where("room_id = ? AND is_active = ?", roomID, true).
		Order("joined_at ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// CleanupStale deactivates active participants whose heartbeat went
// quiet. Returns the number of rows flipped.
func (s *ParticipantService) CleanupStale(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := s.db.Model(&models.Participant{}).
		Where("is_active = ? AND updated_at < ?", true, cutoff).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Infow("deactivated stale participants", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

func (s *ParticipantService) requireHost(roomID uuid.UUID, ident Identity) error {
	participant, err := s.findActive(roomID, ident)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return ErrNotHost
		}
		return err
	}
	if !participant.IsHost {
		return ErrNotHost
	}
	return nil
}

func (s *ParticipantService) findActive(roomID uuid.UUID, ident Identity) (*models.Participant, error) {
	participant, err := s.find(roomID, ident)
	if err != nil {
		return nil, err
	}
	if !participant.IsActive {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

func (s *ParticipantService) find(roomID uuid.UUID, ident Identity) (*models.Participant, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}
	var participant models.Participant
	query := s.db.Where("room_id = ?", roomID)
	if ident.UserID != nil {
		query = query.Where("user_id = ?", *ident.UserID)
	} else {
		query = query.Where("guest_id = ?", *ident.GuestID)
	}
	if err := query.First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

func (s *ParticipantService) identityQuery(roomID uuid.UUID, ident Identity) *gorm.DB {
	query := s.db.Model(&models.Participant{}).Where("room_id = ?", roomID)
	if ident.UserID != nil {
		return query.Where("user_id = ?", *ident.UserID)
	}
	return query.Where("guest_id = ?", *ident.GuestID)
}
