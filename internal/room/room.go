// internal/room/room.go
package room

import (
	"sync"

	"github.com/google/uuid"
)

// Player is one connection's membership in a Room. IDs are per-connection,
// so the same person reconnecting is a new Player. Names are not unique.
type Player struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Score int       `json:"score"` // reserved for a future scoring pass, never mutated here
	Conn  *Conn     `json:"-"`
}

// PlayerInfo is the roster projection broadcast to clients. IsDrawing is
// re-derived from the room's current round on every snapshot, never stored.
type PlayerInfo struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	IsDrawing bool   `json:"isDrawing"`
}

// Room is a named, isolated group of players with at most one active Round.
// Players keeps join order. Each Room has its own mutex; there is no global
// lock across rooms.
type Room struct {
	ID      string
	Players []*Player
	Round   *Round

	Mu sync.Mutex
}

// New returns an empty Room. Rooms only live inside a Registry while they
// have at least one player.
func New(id string) *Room {
	return &Room{ID: id}
}

// Join appends the connection to the roster and returns the fresh snapshot
// for the caller to broadcast. Name constraints are enforced by the gateway
// before this is called; the roster itself allows duplicates.
func (r *Room) Join(conn *Conn, name string) []PlayerInfo {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.Players = append(r.Players, &Player{ID: conn.ID, Name: name, Conn: conn})
	return r.SnapshotUnsafe()
}

// Leave removes every roster entry matching the connection id, so a
// connection that joined the same room twice is fully gone after one sweep.
// Idempotent: a repeated call returns a nil player and changes nothing.
func (r *Room) Leave(id uuid.UUID) (removed *Player, empty bool, snapshot []PlayerInfo) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.ID == id {
			removed = p
			continue
		}
		kept = append(kept, p)
	}
	r.Players = kept
	return removed, len(r.Players) == 0, r.SnapshotUnsafe()
}

// SnapshotUnsafe builds the roster projection in join order. Assumes the
// room lock is held.
func (r *Room) SnapshotUnsafe() []PlayerInfo {
	out := make([]PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, PlayerInfo{
			Name:      p.Name,
			Score:     p.Score,
			IsDrawing: r.Round != nil && r.Round.DrawerID == p.ID,
		})
	}
	return out
}

// Snapshot is the locking variant of SnapshotUnsafe.
func (r *Room) Snapshot() []PlayerInfo {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.SnapshotUnsafe()
}

// PlayerByIDUnsafe looks a member up by connection id. Assumes the room
// lock is held. Returns nil if absent.
func (r *Room) PlayerByIDUnsafe(id uuid.UUID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByID is the locking variant of PlayerByIDUnsafe.
func (r *Room) PlayerByID(id uuid.UUID) *Player {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.PlayerByIDUnsafe(id)
}

// connsUnsafe snapshots the member connections so broadcasts can run after
// the lock is released.
func (r *Room) connsUnsafe() []*Conn {
	conns := make([]*Conn, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Conn != nil {
			conns = append(conns, p.Conn)
		}
	}
	return conns
}

// Broadcast sends msg to every member of the room.
func (r *Room) Broadcast(msg map[string]interface{}) {
	r.Mu.Lock()
	conns := r.connsUnsafe()
	r.Mu.Unlock()
	for _, c := range conns {
		c.Write(msg)
	}
}

// BroadcastExcept sends msg to every member except the given connection.
func (r *Room) BroadcastExcept(sender uuid.UUID, msg map[string]interface{}) {
	r.Mu.Lock()
	conns := r.connsUnsafe()
	r.Mu.Unlock()
	for _, c := range conns {
		if c.ID == sender {
			continue
		}
		c.Write(msg)
	}
}
