// internal/room/room_test.go
package room

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConn() *Conn {
	return &Conn{
		ID:      uuid.New(),
		OutChan: make(chan map[string]interface{}, 32),
	}
}

// drain empties a connection's OutChan and returns everything buffered.
func drain(c *Conn) []map[string]interface{} {
	var out []map[string]interface{}
	for {
		select {
		case msg := <-c.OutChan:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestJoinKeepsInsertionOrder(t *testing.T) {
	r := New("r1")
	for _, name := range []string{"Al", "Bo", "Cy"} {
		r.Join(newTestConn(), name)
	}

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "Al", snap[0].Name)
	assert.Equal(t, "Bo", snap[1].Name)
	assert.Equal(t, "Cy", snap[2].Name)
	for _, p := range snap {
		assert.Zero(t, p.Score)
		assert.False(t, p.IsDrawing)
	}
}

func TestJoinAllowsDuplicateNames(t *testing.T) {
	r := New("r1")
	r.Join(newTestConn(), "Al")
	snap := r.Join(newTestConn(), "Al")
	require.Len(t, snap, 2)
	assert.Equal(t, snap[0].Name, snap[1].Name)
}

func TestLeaveIsIdempotent(t *testing.T) {
	r := New("r1")
	c1 := newTestConn()
	c2 := newTestConn()
	r.Join(c1, "Al")
	r.Join(c2, "Bo")

	p, empty, snap := r.Leave(c1.ID)
	require.NotNil(t, p)
	assert.Equal(t, "Al", p.Name)
	assert.False(t, empty)
	assert.Len(t, snap, 1)

	p, empty, snap = r.Leave(c1.ID)
	assert.Nil(t, p)
	assert.False(t, empty)
	assert.Len(t, snap, 1)

	p, empty, _ = r.Leave(c2.ID)
	require.NotNil(t, p)
	assert.True(t, empty)
}

func TestLeaveRemovesEveryEntryForConnection(t *testing.T) {
	r := New("r1")
	c1 := newTestConn()
	c2 := newTestConn()
	// The roster appends unconditionally, so a repeated join leaves two
	// entries for the same connection; one leave must clear them both.
	r.Join(c1, "Al")
	r.Join(c1, "Al")
	r.Join(c2, "Bo")
	require.Len(t, r.Snapshot(), 3)

	p, empty, snap := r.Leave(c1.ID)
	require.NotNil(t, p)
	assert.False(t, empty)
	require.Len(t, snap, 1)
	assert.Equal(t, "Bo", snap[0].Name)
	assert.Nil(t, r.PlayerByID(c1.ID))
}

func TestSnapshotDerivesDrawerFlag(t *testing.T) {
	r := New("r1")
	c1 := newTestConn()
	c2 := newTestConn()
	r.Join(c1, "Al")
	r.Join(c2, "Bo")

	r.Mu.Lock()
	r.Round = NewRound("apple", c2.ID, 60)
	r.Mu.Unlock()

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.False(t, snap[0].IsDrawing)
	assert.True(t, snap[1].IsDrawing)

	// The flag is recomputed per read, so clearing the round clears it.
	r.Mu.Lock()
	r.EndRoundUnsafe()
	r.Mu.Unlock()
	snap = r.Snapshot()
	assert.False(t, snap[1].IsDrawing)
}

func TestBroadcastExceptSkipsSender(t *testing.T) {
	r := New("r1")
	c1 := newTestConn()
	c2 := newTestConn()
	c3 := newTestConn()
	r.Join(c1, "Al")
	r.Join(c2, "Bo")
	r.Join(c3, "Cy")

	msg := map[string]interface{}{"type": "drawing", "x": 1.0}
	r.BroadcastExcept(c1.ID, msg)

	assert.Empty(t, drain(c1))
	require.Len(t, drain(c2), 1)
	require.Len(t, drain(c3), 1)
}

func TestBroadcastReachesEveryone(t *testing.T) {
	r := New("r1")
	c1 := newTestConn()
	c2 := newTestConn()
	r.Join(c1, "Al")
	r.Join(c2, "Bo")

	r.Broadcast(map[string]interface{}{"type": "message", "message": "hi"})
	assert.Len(t, drain(c1), 1)
	assert.Len(t, drain(c2), 1)
}

func TestEndRoundStopsExactlyOnce(t *testing.T) {
	r := New("r1")
	rd := NewRound("apple", uuid.New(), 60)
	r.Mu.Lock()
	r.Round = rd
	ended := r.EndRoundUnsafe()
	r.Mu.Unlock()

	require.Same(t, rd, ended)
	select {
	case <-rd.Done():
	default:
		t.Fatal("round not stopped after EndRoundUnsafe")
	}

	// A second teardown must be a no-op, not a double close.
	r.Mu.Lock()
	assert.Nil(t, r.EndRoundUnsafe())
	r.Mu.Unlock()
	rd.Stop()
}
