package handlers

import (
	"net/http"

	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/models"
	"github.com/ctgula/vibe-sub002/internal/peers"
	"github.com/ctgula/vibe-sub002/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PeerHandler serves the signaling peer list. The registry is a cache,
// so everything past input validation degrades to an empty list instead
// of erroring.
type PeerHandler struct {
	registry        peers.Registry
	activityService *services.ActivityService
	log             *logger.Logger
}

func NewPeerHandler(registry peers.Registry, activityService *services.ActivityService, log *logger.Logger) *PeerHandler {
	return &PeerHandler{registry: registry, activityService: activityService, log: log}
}

type PeerRequest struct {
	PeerID string `json:"peerId" binding:"required" example:"peer-abc123"`
}

type PeerListResponse struct {
	Peers []string `json:"peers"`
}

type PeerMutationResponse struct {
	Success bool     `json:"success"`
	Peers   []string `json:"peers"`
}

// ListPeers godoc
// @Summary      List signaling peers for a room
// @Tags         peers
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} PeerListResponse
// @Router       /api/rooms/{id}/peers [get]
func (h *PeerHandler) ListPeers(c *gin.Context) {
	roomID := c.Param("id")
	list, err := h.registry.Peers(c.Request.Context(), roomID)
	if err != nil {
		h.log.Warnw("peer list read failed", "room_id", roomID, "error", err)
		list = nil
	}
	c.JSON(http.StatusOK, PeerListResponse{Peers: emptyIfNil(list)})
}

// AddPeer godoc
// @Summary      Register a signaling peer
// @Description  Idempotent; adding a peer twice leaves the list unchanged
// @Tags         peers
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body PeerRequest true "Peer ID"
// @Success      200 {object} PeerMutationResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/rooms/{id}/peers [post]
func (h *PeerHandler) AddPeer(c *gin.Context) {
	roomID := c.Param("id")
	var req PeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "peerId is required"})
		return
	}

	added, err := h.registry.Add(c.Request.Context(), roomID, req.PeerID)
	if err != nil {
		h.log.Warnw("peer add failed", "room_id", roomID, "error", err)
	}
	if added {
		h.recordPeerActivity(roomID, models.ActionPeerConnected, req.PeerID)
	}

	list, err := h.registry.Peers(c.Request.Context(), roomID)
	if err != nil {
		h.log.Warnw("peer list read failed", "room_id", roomID, "error", err)
		list = nil
	}
	c.JSON(http.StatusOK, PeerMutationResponse{Success: true, Peers: emptyIfNil(list)})
}

// RemovePeer godoc
// @Summary      Deregister a signaling peer
// @Description  Removing an absent peer still succeeds
// @Tags         peers
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body PeerRequest true "Peer ID"
// @Success      200 {object} PeerMutationResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/rooms/{id}/peers [delete]
func (h *PeerHandler) RemovePeer(c *gin.Context) {
	roomID := c.Param("id")
	var req PeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "peerId is required"})
		return
	}

	removed, err := h.registry.Remove(c.Request.Context(), roomID, req.PeerID)
	if err != nil {
		h.log.Warnw("peer remove failed", "room_id", roomID, "error", err)
	}
	if removed {
		h.recordPeerActivity(roomID, models.ActionPeerDisconnected, req.PeerID)
	}

	list, err := h.registry.Peers(c.Request.Context(), roomID)
	if err != nil {
		h.log.Warnw("peer list read failed", "room_id", roomID, "error", err)
		list = nil
	}
	c.JSON(http.StatusOK, PeerMutationResponse{Success: true, Peers: emptyIfNil(list)})
}

// recordPeerActivity only logs for rooms with uuid ids; the registry
// itself accepts any key.
func (h *PeerHandler) recordPeerActivity(roomID, action, peerID string) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return
	}
	h.activityService.Record(id, nil, action, map[string]interface{}{"peer_id": peerID})
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
