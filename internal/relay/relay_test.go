// internal/relay/relay_test.go
package relay

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrawl/skrawl/internal/room"
)

func newConn() *room.Conn {
	return &room.Conn{
		ID:      uuid.New(),
		OutChan: make(chan map[string]interface{}, 8),
	}
}

func recv(t *testing.T, c *room.Conn) map[string]interface{} {
	t.Helper()
	select {
	case msg := <-c.OutChan:
		return msg
	default:
		t.Fatal("expected a relayed event")
		return nil
	}
}

func TestRelayExcludesSender(t *testing.T) {
	r := room.New("r1")
	sender := newConn()
	peer1 := newConn()
	peer2 := newConn()
	r.Join(sender, "Al")
	r.Join(peer1, "Bo")
	r.Join(peer2, "Cy")

	event := map[string]interface{}{
		"type":  "drawing",
		"room":  "r1",
		"x":     120.5,
		"y":     44.0,
		"color": "#0f0",
		"size":  5,
	}
	Relay(r, sender.ID, event)

	// Forwarded verbatim to peers, never back to the sender.
	assert.Equal(t, event, recv(t, peer1))
	assert.Equal(t, event, recv(t, peer2))
	select {
	case msg := <-sender.OutChan:
		t.Fatalf("sender received its own event: %v", msg)
	default:
	}
}

func TestRelayPassesUnvalidatedPayloadsThrough(t *testing.T) {
	r := room.New("r1")
	sender := newConn()
	peer := newConn()
	r.Join(sender, "Al")
	r.Join(peer, "Bo")

	// Negative width and clear markers are client-trusted and untouched.
	event := map[string]interface{}{"type": "drawing", "clear": true, "size": -3}
	Relay(r, sender.ID, event)
	got := recv(t, peer)
	require.Equal(t, event, got)
}

func TestRelayFromNonMemberStillReachesRoom(t *testing.T) {
	r := room.New("r1")
	peer := newConn()
	r.Join(peer, "Bo")

	outsider := newConn()
	Relay(r, outsider.ID, map[string]interface{}{"type": "drawing", "isDrawing": false})
	assert.NotNil(t, recv(t, peer))
}
