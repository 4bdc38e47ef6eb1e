// internal/handlers/gateway.go
package handlers

import (
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/skrawl/skrawl/internal/relay"
	"github.com/skrawl/skrawl/internal/room"
)

// MaxNameLength bounds usernames, in runes.
const MaxNameLength = 12

// DefaultRoomID is joined when the client supplies no room name.
const DefaultRoomID = "default"

// HandleJoin validates the username and adds the connection to the room,
// creating the room on first join. A rejected name is reported to the
// submitter only and causes no state change.
func (s *Server) HandleJoin(conn *room.Conn, username, roomID string) {
	if username == "" {
		conn.Write(map[string]interface{}{"type": "message", "message": "A username is required to join"})
		return
	}
	if utf8.RuneCountInString(username) > MaxNameLength {
		conn.Write(map[string]interface{}{
			"type":    "message",
			"message": fmt.Sprintf("Usernames are limited to %d characters", MaxNameLength),
		})
		return
	}
	if roomID == "" {
		roomID = DefaultRoomID
	}

	r := s.Rooms.GetOrCreate(roomID)
	snapshot := r.Join(conn, username)

	conn.Write(map[string]interface{}{"type": "message", "message": "Joined room " + roomID})
	r.BroadcastExcept(conn.ID, map[string]interface{}{"type": "message", "message": username + " has joined the room"})
	r.Broadcast(map[string]interface{}{"type": "playerList", "players": snapshot})

	s.Logger.WithFields(logrus.Fields{
		"room":   roomID,
		"player": conn.ID,
		"name":   username,
	}).Info("player joined")
}

// HandleStartGame forwards to the round controller's start guard. Requests
// for unknown rooms, rooms already in a round or rooms without enough
// players are silently ignored.
func (s *Server) HandleStartGame(conn *room.Conn, roomID string) {
	r, ok := s.Rooms.Get(roomID)
	if !ok {
		return
	}
	if !s.Rounds.StartRound(r) {
		s.Logger.WithField("room", roomID).Debug("start request ignored")
	}
}

// HandleDrawing relays a drawing packet to the rest of the room. Membership
// is deliberately not checked: an event for an existing room the sender
// never joined is still relayed, matching the original transport behavior.
func (s *Server) HandleDrawing(conn *room.Conn, roomID string, packet map[string]interface{}) {
	r, ok := s.Rooms.Get(roomID)
	if !ok {
		return
	}
	relay.Relay(r, conn.ID, packet)
}

// HandleChat broadcasts "<name>: <text>" to the whole room, sender
// included, iff the sender is a member of that room. Chat from non-members
// is silently dropped.
func (s *Server) HandleChat(conn *room.Conn, roomID, text string) {
	r, ok := s.Rooms.Get(roomID)
	if !ok {
		return
	}
	p := r.PlayerByID(conn.ID)
	if p == nil {
		return
	}
	r.Broadcast(map[string]interface{}{"type": "message", "message": p.Name + ": " + text})
}

// HandleDisconnect sweeps every room for the connection. Leave is
// idempotent, so a repeated disconnect for the same connection is safe.
// Rooms left empty are torn down, round included; otherwise the departure
// is announced and, when the drawer left, the round is aborted.
func (s *Server) HandleDisconnect(conn *room.Conn) {
	s.Rooms.ForEach(func(r *room.Room) {
		p, empty, snapshot := r.Leave(conn.ID)
		if p == nil {
			return
		}

		if empty {
			r.Mu.Lock()
			r.EndRoundUnsafe()
			r.Mu.Unlock()
			s.Rooms.Remove(r.ID)
			s.Logger.WithField("room", r.ID).Info("room removed")
			return
		}

		r.Broadcast(map[string]interface{}{"type": "message", "message": p.Name + " has left the room"})
		r.Broadcast(map[string]interface{}{"type": "playerList", "players": snapshot})
		s.Rounds.AbortRoundIfDrawer(r, conn.ID)
	})
}
