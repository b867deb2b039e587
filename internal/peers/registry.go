// Package peers tracks which signaling peer IDs are currently attached
// to a room. The registry is a cache for the signaling endpoint, not a
// source of truth: the participant table stays authoritative.
package peers

import "context"

type Registry interface {
	// Peers returns the current peer list for a room; unknown rooms
	// yield an empty list, never an error the caller must branch on.
	Peers(ctx context.Context, roomID string) ([]string, error)
	// Add registers a peer. Adding a peer that is already present is a
	// no-op; the bool reports whether the list actually grew.
	Add(ctx context.Context, roomID, peerID string) (bool, error)
	// Remove drops a peer. Removing an absent peer is a no-op; the bool
	// reports whether anything was removed.
	Remove(ctx context.Context, roomID, peerID string) (bool, error)
	Close() error
}
