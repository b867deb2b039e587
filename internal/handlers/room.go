package handlers

import (
	"net/http"
	"strconv"

	"github.com/ctgula/vibe-sub002/internal/models"
	"github.com/ctgula/vibe-sub002/internal/services"
	"github.com/ctgula/vibe-sub002/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomService        *services.RoomService
	participantService *services.ParticipantService
	activityService    *services.ActivityService
	hub                *ws.Hub
}

func NewRoomHandler(roomService *services.RoomService, participantService *services.ParticipantService, activityService *services.ActivityService, hub *ws.Hub) *RoomHandler {
	return &RoomHandler{
		roomService:        roomService,
		participantService: participantService,
		activityService:    activityService,
		hub:                hub,
	}
}

type CreateRoomRequest struct {
	RoomName    string `json:"room_name" binding:"required,min=1,max=100" example:"late night lofi"`
	Description string `json:"description" binding:"max=500" example:"chill beats and chat"`
	IsPublic    *bool  `json:"is_public" example:"true"`
}

type JoinRoomRequest struct {
	RoomID string `json:"room_id" binding:"required" example:"0c4b9c2e-8f7a-4f7d-9f7e-2e9a2f1b6c3d"`
}

// CreateRoom godoc
// @Summary      Create a room
// @Description  Create a room and seat the caller as its host
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRoomRequest true "Room data"
// @Success      201 {object} models.Room
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "room_name is required"})
		return
	}

	ident := currentIdentity(c)
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	room, err := h.roomService.CreateRoom(ident.ProfileID(), req.RoomName, req.Description, isPublic)
	if err != nil {
		fail(c, err)
		return
	}

	if _, err := h.participantService.Join(room.ID, ident, services.JoinOptions{AsHost: true}); err != nil {
		fail(c, err)
		return
	}
	h.recordActivity(room.ID, ident, models.ActionJoined, map[string]interface{}{"role": models.RoleHost})

	c.JSON(http.StatusCreated, room)
}

// ListRooms godoc
// @Summary      List public active rooms
// @Tags         rooms
// @Produce      json
// @Success      200 {array} models.Room
// @Router       /api/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListPublicRooms()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary      Get a room with its active participants
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		fail(c, err)
		return
	}

	participants, _ := h.participantService.ListActive(roomID)

	c.JSON(http.StatusOK, gin.H{
		"room":         room,
		"participants": participants,
	})
}

// JoinRoom godoc
// @Summary      Join a room
// @Description  Insert or reactivate the caller's participant row
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body JoinRoomRequest true "Room to join"
// @Success      200 {object} models.Participant
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/join [post]
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "room_id is required"})
		return
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid room_id"})
		return
	}

	ident := currentIdentity(c)
	participant, err := h.participantService.Join(roomID, ident, services.JoinOptions{})
	if err != nil {
		fail(c, err)
		return
	}

	h.recordActivity(roomID, ident, models.ActionJoined, nil)
	h.hub.Broadcast(roomID, ws.Event{Type: "participant_joined", Data: participant})

	c.JSON(http.StatusOK, participant)
}

// LeaveRoom godoc
// @Summary      Leave a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/leave [post]
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	ident := currentIdentity(c)
	participant, err := h.participantService.Leave(roomID, ident)
	if err != nil {
		fail(c, err)
		return
	}

	h.recordActivity(roomID, ident, models.ActionLeft, nil)
	h.hub.Broadcast(roomID, ws.Event{Type: "participant_left", Data: participant})

	c.JSON(http.StatusOK, MessageResponse{Message: "left room"})
}

// Heartbeat godoc
// @Summary      Refresh participant liveness
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/heartbeat [post]
func (h *RoomHandler) Heartbeat(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	if err := h.participantService.Heartbeat(roomID, currentIdentity(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// CloseRoom godoc
// @Summary      Close a room
// @Description  Creator-only; deactivates the room and all its participants
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/rooms/{id}/close [post]
func (h *RoomHandler) CloseRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	ident := currentIdentity(c)
	if err := h.roomService.CloseRoom(roomID, ident.ProfileID()); err != nil {
		fail(c, err)
		return
	}

	h.recordActivity(roomID, ident, models.ActionRoomClosed, nil)
	h.hub.Broadcast(roomID, ws.Event{Type: "room_closed", Data: nil})

	c.JSON(http.StatusOK, MessageResponse{Message: "room closed"})
}

// RoomActivity godoc
// @Summary      Recent activity feed for a room
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        limit query int false "Max entries"
// @Success      200 {array} models.ActivityLog
// @Router       /api/rooms/{id}/activity [get]
func (h *RoomHandler) RoomActivity(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.activityService.RecentForRoom(roomID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *RoomHandler) recordActivity(roomID uuid.UUID, ident services.Identity, action string, details map[string]interface{}) {
	profileID := ident.ProfileID()
	h.activityService.Record(roomID, &profileID, action, details)
}

func parseRoomID(c *gin.Context) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return uuid.Nil, false
	}
	return roomID, true
}
