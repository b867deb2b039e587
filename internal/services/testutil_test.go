package services

import (
	"testing"

	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// one connection so the in-memory schema is shared
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
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Close)
	return log
}

func registerProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()
	auth := NewAuthService(db, "test-secret")
	profile, _, err := auth.Register(username+"@example.com", "password123", username)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return profile
}

func guestProfile(t *testing.T, db *gorm.DB, displayName string) *models.Profile {
	t.Helper()
	auth := NewAuthService(db, "test-secret")
	profile, _, err := auth.GuestSession(displayName)
	if err != nil {
		t.Fatalf("guest session: %v", err)
	}
	return profile
}

func createTestRoom(t *testing.T, db *gorm.DB, creator *models.Profile) *models.Room {
	t.Helper()
	room, err := NewRoomService(db).CreateRoom(creator.ID, "test room", "", true)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	return room
}
