package ws

import (
	"encoding/json"
	"sync"

	"github.com/ctgula/vibe-sub002/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*websocket.Conn]bool
	log   *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[*websocket.Conn]bool),
		log:   log.With("component", "ws_hub"),
	}
}

func (h *Hub) AddConnection(roomID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomID][conn] = true
	h.log.Debugw("client connected", "room_id", roomID, "total", len(h.rooms[roomID]))
}

func (h *Hub) RemoveConnection(roomID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
		h.log.Debugw("client disconnected", "room_id", roomID)
	}
}

// Broadcast takes the write lock because failed writers are evicted
// from the room map in place.
func (h *Hub) Broadcast(roomID uuid.UUID, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[roomID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.log.Errorw("marshal failed", "error", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Warnw("write failed, dropping client", "room_id", roomID, "error", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
