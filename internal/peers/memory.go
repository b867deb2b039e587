package peers

import (
	"context"
	"sync"
)

// MemoryRegistry is the single-process default. Peer lists live for the
// lifetime of the registry and are not shared across instances.
type MemoryRegistry struct {
	mu    sync.RWMutex
	rooms map[string][]string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{rooms: make(map[string][]string)}
}

func (r *MemoryRegistry) Peers(_ context.Context, roomID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peers := r.rooms[roomID]
	out := make([]string, len(peers))
	copy(out, peers)
	return out, nil
}

func (r *MemoryRegistry) Add(_ context.Context, roomID, peerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.rooms[roomID] {
		if p == peerID {
			return false, nil
		}
	}
	r.rooms[roomID] = append(r.rooms[roomID], peerID)
	return true, nil
}

func (r *MemoryRegistry) Remove(_ context.Context, roomID, peerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	peers, ok := r.rooms[roomID]
	if !ok {
		return false, nil
	}
	for i, p := range peers {
		if p == peerID {
			r.rooms[roomID] = append(peers[:i], peers[i+1:]...)
			if len(r.rooms[roomID]) == 0 {
				delete(r.rooms, roomID)
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRegistry) Close() error { return nil }
