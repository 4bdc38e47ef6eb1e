// internal/game/round.go
package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skrawl/skrawl/internal/journal"
	"github.com/skrawl/skrawl/internal/room"
)

// Defaults for the production round cadence. Tests shorten these.
const (
	DefaultRoundSeconds = 60
	DefaultTickInterval = time.Second
	DefaultRestartDelay = 5 * time.Second
)

// Controller runs the per-room round state machine: idle, active countdown,
// round end, then an automatic re-entry after a fixed delay while the room
// still has more than one player. All round mutation happens under the
// owning room's lock; broadcast payloads are handed to connection channels
// after the lock is released.
type Controller struct {
	Rooms  *room.Registry
	Logger *logrus.Logger

	Words        []string
	RoundSeconds int
	TickInterval time.Duration
	RestartDelay time.Duration

	// Journal receives round lifecycle records. Optional; nil disables it.
	Journal *journal.Publisher
}

// NewController returns a Controller with production timing.
func NewController(rooms *room.Registry, logger *logrus.Logger) *Controller {
	return &Controller{
		Rooms:        rooms,
		Logger:       logger,
		Words:        DefaultWords,
		RoundSeconds: DefaultRoundSeconds,
		TickInterval: DefaultTickInterval,
		RestartDelay: DefaultRestartDelay,
	}
}

// StartRound begins a round if the room has more than one player and no
// round is already active; otherwise it is a no-op and returns false. On
// start it picks a drawer and word uniformly at random, broadcasts the
// roster (now carrying the drawer flag), sends the word privately to the
// drawer and announces the round to the room.
func (c *Controller) StartRound(r *room.Room) bool {
	r.Mu.Lock()
	if r.Round != nil || len(r.Players) < 2 {
		r.Mu.Unlock()
		return false
	}
	drawer := r.Players[rand.Intn(len(r.Players))]
	word := pickWord(c.Words)
	rd := room.NewRound(word, drawer.ID, c.RoundSeconds)
	r.Round = rd
	snapshot := r.SnapshotUnsafe()
	drawerConn := drawer.Conn
	r.Mu.Unlock()

	r.Broadcast(map[string]interface{}{"type": "playerList", "players": snapshot})
	if drawerConn != nil {
		drawerConn.Write(map[string]interface{}{"type": "wordToDraw", "word": word})
	}
	r.Broadcast(map[string]interface{}{"type": "message", "message": "A new round has started!"})

	c.Logger.WithFields(logrus.Fields{
		"room":   r.ID,
		"drawer": drawer.ID,
	}).Info("round started")
	c.Journal.RoundStarted(r.ID, word, drawer.ID)

	go c.runCountdown(r, rd)
	return true
}

// runCountdown decrements the round once per tick and broadcasts the value.
// The sequence observed by clients runs RoundSeconds-1 down to 0. Exits when
// the round is stopped or replaced.
func (c *Controller) runCountdown(r *room.Room, rd *room.Round) {
	ticker := time.NewTicker(c.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rd.Done():
			return
		case <-ticker.C:
			r.Mu.Lock()
			if r.Round != rd {
				// Stale round: already torn down by another path.
				r.Mu.Unlock()
				return
			}
			rd.Remaining--
			remaining := rd.Remaining
			r.Mu.Unlock()

			r.Broadcast(map[string]interface{}{"type": "timerUpdate", "seconds": remaining})
			if remaining <= 0 {
				c.endRound(r, rd)
				return
			}
		}
	}
}

// AbortRound ends the active round before its timer expires, e.g. when the
// drawer disconnects mid-round. It goes through the same cancellation path
// as a natural timeout and schedules the same delayed restart. No-op when
// the room is idle.
func (c *Controller) AbortRound(r *room.Room) {
	r.Mu.Lock()
	rd := r.Round
	r.Mu.Unlock()
	if rd == nil {
		return
	}
	c.endRound(r, rd)
}

// AbortRoundIfDrawer ends the active round only if it is still drawn by the
// given connection. The disconnect sweep uses this instead of a flag read
// before the roster mutation, so a round that ended and restarted in the
// meantime is left alone.
func (c *Controller) AbortRoundIfDrawer(r *room.Room, drawerID uuid.UUID) {
	r.Mu.Lock()
	rd := r.Round
	r.Mu.Unlock()
	if rd == nil || rd.DrawerID != drawerID {
		return
	}
	c.endRound(r, rd)
}

// endRound tears rd down, announces the word and schedules the delayed
// restart. No-op if rd is no longer the room's current round, so timeout
// and abort can race harmlessly.
func (c *Controller) endRound(r *room.Room, rd *room.Round) {
	r.Mu.Lock()
	if r.Round != rd {
		r.Mu.Unlock()
		return
	}
	r.EndRoundUnsafe()
	snapshot := r.SnapshotUnsafe()
	r.Mu.Unlock()

	r.Broadcast(map[string]interface{}{"type": "message", "message": "Round over! The word was: " + rd.Word})
	r.Broadcast(map[string]interface{}{"type": "playerList", "players": snapshot})

	c.Logger.WithField("room", r.ID).Info("round ended")
	c.Journal.RoundEnded(r.ID, rd.Word, rd.DrawerID)

	c.scheduleRestart(r.ID)
}

// scheduleRestart re-enters the active state after the fixed delay. The
// room-exists and player-count guards are re-evaluated at fire time, not at
// schedule time: membership may have changed during the delay.
func (c *Controller) scheduleRestart(roomID string) {
	time.AfterFunc(c.RestartDelay, func() {
		r, ok := c.Rooms.Get(roomID)
		if !ok {
			return
		}
		c.StartRound(r)
	})
}
