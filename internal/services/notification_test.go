package services

import (
	"errors"
	"testing"

	"github.com/ctgula/vibe-sub002/internal/models"

	"github.com/google/uuid"
)

func TestNotifyAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := registerProfile(t, db, "alice")

	err := svc.Notify(user.ID, models.NotificationHandRaised, map[string]interface{}{"room_id": uuid.New().String()})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := svc.Notify(user.ID, models.NotificationHandApproved, nil); err != nil {
		t.Fatalf("notify: %v", err)
	}

	list, err := svc.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	for _, n := range list {
		if n.IsRead {
			t.Fatalf("notifications start unread")
		}
	}

	if err := svc.MarkRead(list[0].ID, user.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	// marking someone else's notification must not work
	if err := svc.MarkRead(list[1].ID, uuid.New()); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("want ErrNotificationNotFound, got %v", err)
	}

	if err := svc.MarkAllRead(user.ID); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	list, err = svc.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, n := range list {
		if !n.IsRead {
			t.Fatalf("expected all read after MarkAllRead")
		}
	}
}

func TestActivityFeed(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db, newTestLogger(t))
	user := registerProfile(t, db, "bob")
	room := createTestRoom(t, db, user)

	svc.Record(room.ID, &user.ID, models.ActionJoined, nil)
	svc.Record(room.ID, &user.ID, models.ActionHandRaised, map[string]interface{}{"source": "test"})
	svc.Record(room.ID, nil, models.ActionPeerConnected, map[string]interface{}{"peer_id": "p1"})

	entries, err := svc.RecentForRoom(room.ID, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	limited, err := svc.RecentForRoom(room.ID, 2)
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit ignored, got %d entries", len(limited))
	}
}
