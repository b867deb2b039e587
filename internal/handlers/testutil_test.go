package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/middleware"
	"github.com/ctgula/vibe-sub002/internal/models"
	"github.com/ctgula/vibe-sub002/internal/peers"
	"github.com/ctgula/vibe-sub002/internal/services"
	"github.com/ctgula/vibe-sub002/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db           *gorm.DB
	router       *gin.Engine
	auth         *services.AuthService
	participants *services.ParticipantService
	registry     peers.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Room{},
		&models.Participant{},
		&models.ActivityLog{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(log.Close)

	hub := ws.NewHub(log)
	registry := peers.NewMemoryRegistry()

	authService := services.NewAuthService(db, "test-secret")
	profileService := services.NewProfileService(db)
	roomService := services.NewRoomService(db)
	participantService := services.NewParticipantService(db, log)
	activityService := services.NewActivityService(db, log)
	notificationService := services.NewNotificationService(db)

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	roomHandler := NewRoomHandler(roomService, participantService, activityService, hub)
	participantHandler := NewParticipantHandler(participantService, notificationService, activityService, hub, log)
	peerHandler := NewPeerHandler(registry, activityService, log)
	notificationHandler := NewNotificationHandler(notificationService)

	r := gin.New()
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/guest", authHandler.Guest)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/me", middleware.JWTAuth(authService), profileHandler.GetMe)
			profiles.PUT("/me", middleware.JWTAuth(authService), profileHandler.UpdateMe)
			profiles.GET("/:id", profileHandler.GetProfile)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.GET("/:id/activity", roomHandler.RoomActivity)
			rooms.GET("/:id/peers", peerHandler.ListPeers)
			rooms.POST("/:id/peers", peerHandler.AddPeer)
			rooms.DELETE("/:id/peers", peerHandler.RemovePeer)

			authed := rooms.Group("")
			authed.Use(middleware.JWTAuth(authService))
			{
				authed.POST("", roomHandler.CreateRoom)
				authed.POST("/join", roomHandler.JoinRoom)
				authed.POST("/:id/leave", roomHandler.LeaveRoom)
				authed.POST("/:id/heartbeat", roomHandler.Heartbeat)
				authed.POST("/:id/close", roomHandler.CloseRoom)
				authed.POST("/:id/hand", participantHandler.RaiseHand)
				authed.DELETE("/:id/hand", participantHandler.DismissOwnHand)
				authed.POST("/:id/approve", participantHandler.Approve)
				authed.POST("/:id/dismiss", participantHandler.DismissTarget)
				authed.PUT("/:id/mute", participantHandler.SetMute)
			}
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.JWTAuth(authService))
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		}
	}

	return &testEnv{
		db:           db,
		router:       r,
		auth:         authService,
		participants: participantService,
		registry:     registry,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerUser(t *testing.T, username string) (*models.Profile, string) {
	t.Helper()
	profile, token, err := e.auth.Register(username+"@example.com", "password123", username)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return profile, token
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
