package handlers

import (
	"net/http"

	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/models"
	"github.com/ctgula/vibe-sub002/internal/services"
	"github.com/ctgula/vibe-sub002/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ParticipantHandler struct {
	participantService  *services.ParticipantService
	notificationService *services.NotificationService
	activityService     *services.ActivityService
	hub                 *ws.Hub
	log                 *logger.Logger
}

func NewParticipantHandler(participantService *services.ParticipantService, notificationService *services.NotificationService, activityService *services.ActivityService, hub *ws.Hub, log *logger.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		participantService:  participantService,
		notificationService: notificationService,
		activityService:     activityService,
		hub:                 hub,
		log:                 log,
	}
}

type TargetRequest struct {
	UserID  string `json:"user_id" example:"0c4b9c2e-8f7a-4f7d-9f7e-2e9a2f1b6c3d"`
	GuestID string `json:"guest_id" example:""`
}

type MuteRequest struct {
	IsMuted *bool `json:"is_muted" binding:"required" example:"true"`
}

func (r TargetRequest) identity() (services.Identity, error) {
	var ident services.Identity
	if r.UserID != "" {
		id, err := uuid.Parse(r.UserID)
		if err != nil {
			return ident, err
		}
		ident.UserID = &id
	}
	if r.GuestID != "" {
		id, err := uuid.Parse(r.GuestID)
		if err != nil {
			return ident, err
		}
		ident.GuestID = &id
	}
	return ident, ident.Validate()
}

// RaiseHand godoc
// @Summary      Raise hand to request speaking
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200 {object} models.Participant
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/hand [post]
func (h *ParticipantHandler) RaiseHand(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	ident := currentIdentity(c)
	participant, err := h.participantService.RaiseHand(roomID, ident)
	if err != nil {
		fail(c, err)
		return
	}

	profileID := ident.ProfileID()
	h.activityService.Record(roomID, &profileID, models.ActionHandRaised, nil)
	h.notifyHosts(roomID, participant)
	h.hub.Broadcast(roomID, ws.Event{Type: "hand_raised", Data: participant})

	c.JSON(http.StatusOK, participant)
}

// DismissOwnHand godoc
// @Summary      Lower own raised hand
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200 {object} models.Participant
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/hand [delete]
func (h *ParticipantHandler) DismissOwnHand(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	ident := currentIdentity(c)
	participant, err := h.participantService.DismissHand(roomID, ident)
	if err != nil {
		fail(c, err)
		return
	}

	profileID := ident.ProfileID()
	h.activityService.Record(roomID, &profileID, models.ActionHandDismissed, nil)
	h.hub.Broadcast(roomID, ws.Event{Type: "hand_dismissed", Data: participant})

	c.JSON(http.StatusOK, participant)
}

// Approve godoc
// @Summary      Approve a raised hand (host only)
// @Description  Promotes the target to speaker and lowers their hand
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Param        request body TargetRequest true "Target identity"
// @Success      200 {object} models.Participant
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/approve [post]
func (h *ParticipantHandler) Approve(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	target, err := req.identity()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: services.ErrIdentityRequired.Error()})
		return
	}

	host := currentIdentity(c)
	participant, err := h.participantService.Approve(roomID, host, target)
	if err != nil {
		fail(c, err)
		return
	}

	hostID := host.ProfileID()
	h.activityService.Record(roomID, &hostID, models.ActionHandApproved, map[string]interface{}{
		"target": target.ProfileID().String(),
	})
	if err := h.notificationService.Notify(target.ProfileID(), models.NotificationHandApproved, map[string]interface{}{
		"room_id": roomID.String(),
	}); err != nil {
		h.log.Warnw("approval notification dropped", "room_id", roomID, "error", err)
	}
	h.hub.Broadcast(roomID, ws.Event{Type: "hand_approved", Data: participant})

	c.JSON(http.StatusOK, participant)
}

// DismissTarget godoc
// @Summary      Dismiss a raised hand (host only)
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Param        request body TargetRequest true "Target identity"
// @Success      200 {object} models.Participant
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/dismiss [post]
func (h *ParticipantHandler) DismissTarget(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	target, err := req.identity()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: services.ErrIdentityRequired.Error()})
		return
	}

	host := currentIdentity(c)
	participant, err := h.participantService.DismissTarget(roomID, host, target)
	if err != nil {
		fail(c, err)
		return
	}

	hostID := host.ProfileID()
	h.activityService.Record(roomID, &hostID, models.ActionHandDismissed, map[string]interface{}{
		"target": target.ProfileID().String(),
	})
	h.hub.Broadcast(roomID, ws.Event{Type: "hand_dismissed", Data: participant})

	c.JSON(http.StatusOK, participant)
}

// SetMute godoc
// @Summary      Set own mute state
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Param        request body MuteRequest true "Mute state"
// @Success      200 {object} models.Participant
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/mute [put]
func (h *ParticipantHandler) SetMute(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var req MuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "is_muted is required"})
		return
	}

	ident := currentIdentity(c)
	participant, err := h.participantService.SetMuted(roomID, ident, *req.IsMuted)
	if err != nil {
		fail(c, err)
		return
	}

	profileID := ident.ProfileID()
	h.activityService.Record(roomID, &profileID, models.ActionMuteChanged, map[string]interface{}{
		"is_muted": *req.IsMuted,
	})
	h.hub.Broadcast(roomID, ws.Event{Type: "mute_changed", Data: participant})

	c.JSON(http.StatusOK, participant)
}

// notifyHosts pushes a hand_raised notification to every active host of
// the room. Best-effort: a failed insert only logs.
func (h *ParticipantHandler) notifyHosts(roomID uuid.UUID, raiser *models.Participant) {
	participants, err := h.participantService.ListActive(roomID)
	if err != nil {
		h.log.Warnw("host lookup for notification failed", "room_id", roomID, "error", err)
		return
	}
	for _, p := range participants {
		if !p.IsHost {
			continue
		}
		hostProfile := p.UserID
		if hostProfile == nil {
			hostProfile = p.GuestID
		}
		if hostProfile == nil {
			continue
		}
		err := h.notificationService.Notify(*hostProfile, models.NotificationHandRaised, map[string]interface{}{
			"room_id":        roomID.String(),
			"participant_id": raiser.ID.String(),
		})
		if err != nil {
			h.log.Warnw("hand-raised notification dropped", "room_id", roomID, "error", err)
		}
	}
}
