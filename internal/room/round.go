// internal/room/round.go
package room

import "github.com/google/uuid"

// Round is one timed drawing session: a word, a drawer, a countdown. Word
// and DrawerID are fixed at creation; Remaining is mutated under the owning
// Room's lock by the round controller.
type Round struct {
	Word      string
	DrawerID  uuid.UUID
	Remaining int

	stop    chan struct{}
	stopped bool
}

// NewRound creates a round with a full countdown. The drawer id must
// reference a player currently in the room.
func NewRound(word string, drawerID uuid.UUID, seconds int) *Round {
	return &Round{
		Word:      word,
		DrawerID:  drawerID,
		Remaining: seconds,
		stop:      make(chan struct{}),
	}
}

// Stop cancels the countdown. Only the first call closes the channel, so
// every round-ending transition can call it safely. Callers must hold the
// owning Room's lock.
func (rd *Round) Stop() {
	if rd.stopped {
		return
	}
	rd.stopped = true
	close(rd.stop)
}

// Done is closed once the round has been stopped. The countdown goroutine
// selects on it to exit.
func (rd *Round) Done() <-chan struct{} {
	return rd.stop
}

// EndRoundUnsafe stops and detaches the room's current round, if any. This
// is the single cancellation path for every round-ending transition:
// timeout, drawer loss and room teardown all go through here, so no exit
// path can leak a running countdown. Assumes the room lock is held.
func (r *Room) EndRoundUnsafe() *Round {
	rd := r.Round
	if rd == nil {
		return nil
	}
	rd.Stop()
	r.Round = nil
	return rd
}
