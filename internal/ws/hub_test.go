package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ctgula/vibe-sub002/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Close)
	return log
}

func dialHub(t *testing.T, hub *Hub, roomID uuid.UUID) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.AddConnection(roomID, conn)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatalf("connection never registered with hub")
	}
	return client
}

func TestBroadcastReachesRoomClients(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	roomID := uuid.New()
	client := dialHub(t, hub, roomID)

	hub.Broadcast(roomID, Event{Type: "participant_joined", Data: map[string]interface{}{"id": "p1"}})

	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	if event.Type != "participant_joined" {
		t.Fatalf("unexpected event type %q", event.Type)
	}
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	// no clients registered; must not panic or block
	hub.Broadcast(uuid.New(), Event{Type: "room_closed"})
}

func TestConcurrentBroadcastWithDeadClient(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	roomID := uuid.New()

	live := dialHub(t, hub, roomID)
	dead := dialHub(t, hub, roomID)
	_ = dead.Close()

	readErr := make(chan error, 1)
	go func() {
		_ = live.SetReadDeadline(time.Now().Add(5 * time.Second))
		for i := 0; i < 10; i++ {
			if _, _, err := live.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
		readErr <- nil
	}()

	// concurrent broadcasts must evict the dead writer without racing on
	// the room map
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				hub.Broadcast(roomID, Event{Type: "mute_changed"})
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-readErr:
		if err != nil {
			t.Fatalf("live client stopped receiving during concurrent broadcasts: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("live client never received 10 events")
	}
}

func TestBroadcastScopedToRoom(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	roomA := uuid.New()
	roomB := uuid.New()
	clientA := dialHub(t, hub, roomA)
	clientB := dialHub(t, hub, roomB)

	hub.Broadcast(roomA, Event{Type: "hand_raised"})

	_ = clientA.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := clientA.ReadMessage(); err != nil {
		t.Fatalf("room A client should receive the event: %v", err)
	}

	_ = clientB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := clientB.ReadMessage(); err == nil {
		t.Fatalf("room B client must not receive room A events")
	}
}
