package handlers

import (
	"net/http"

	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub *ws.Hub
	log *logger.Logger
}

func NewWSHandler(hub *ws.Hub, log *logger.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: log}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      WebSocket stream of room events
// @Description  Receive participant_joined/left, hand and mute events in real time
// @Tags         websocket
// @Param        id path string true "Room ID"
// @Router       /ws/rooms/{id} [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	h.hub.AddConnection(roomID, conn)
	defer h.hub.RemoveConnection(roomID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
