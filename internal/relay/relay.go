// internal/relay/relay.go

// Package relay forwards drawing events between room members. The server
// holds no canvas bitmap and no stroke history: undo and replay are
// client-local concerns, and a late joiner sees a blank canvas until new
// strokes arrive.
package relay

import (
	"github.com/google/uuid"

	"github.com/skrawl/skrawl/internal/room"
)

// Relay forwards a decoded drawing payload (stroke segment, stroke end or
// canvas clear) verbatim to every member of r except the sender, who has
// already rendered it locally. Coordinates, color and width are
// client-trusted and pass through unvalidated.
func Relay(r *room.Room, senderID uuid.UUID, event map[string]interface{}) {
	r.BroadcastExcept(senderID, event)
}
