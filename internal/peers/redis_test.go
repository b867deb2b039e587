package peers

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newRedisRegistry(t *testing.T) *RedisRegistry {
	t.Helper()
	mr := miniredis.RunT(t)
	reg, err := NewRedisRegistry(mr.Addr())
	if err != nil {
		t.Fatalf("redis registry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func TestRedisRegistryAddRemove(t *testing.T) {
	reg := newRedisRegistry(t)
	ctx := context.Background()

	added, err := reg.Add(ctx, "room-1", "peer-a")
	if err != nil || !added {
		t.Fatalf("add: added=%v err=%v", added, err)
	}
	added, err = reg.Add(ctx, "room-1", "peer-a")
	if err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if added {
		t.Fatalf("duplicate add should be a no-op")
	}

	list, err := reg.Peers(ctx, "room-1")
	if err != nil {
		t.Fatalf("peers: %v", err)
	}
	if len(list) != 1 || list[0] != "peer-a" {
		t.Fatalf("unexpected list %v", list)
	}

	removed, err := reg.Remove(ctx, "room-1", "peer-a")
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	removed, err = reg.Remove(ctx, "room-1", "peer-a")
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if removed {
		t.Fatalf("absent removal should be a no-op")
	}
}

func TestRedisRegistryRoomsAreIsolated(t *testing.T) {
	reg := newRedisRegistry(t)
	ctx := context.Background()

	if _, err := reg.Add(ctx, "room-1", "peer-a"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := reg.Add(ctx, "room-2", "peer-b"); err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := reg.Peers(ctx, "room-2")
	if err != nil {
		t.Fatalf("peers: %v", err)
	}
	if len(list) != 1 || list[0] != "peer-b" {
		t.Fatalf("rooms leaked into each other: %v", list)
	}

	list, err = reg.Peers(ctx, "room-3")
	if err != nil {
		t.Fatalf("peers: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("unknown room should be empty, got %v", list)
	}
}
