// internal/handlers/server.go
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/skrawl/skrawl/internal/game"
	"github.com/skrawl/skrawl/internal/journal"
	"github.com/skrawl/skrawl/internal/room"
)

// Server is the session gateway: it owns the room registry and round
// controller and dispatches inbound events from live connections to them.
type Server struct {
	Logger *logrus.Logger
	Rooms  *room.Registry
	Rounds *game.Controller
}

// NewServer wires a registry and round controller together. The journal may
// be nil to disable round event publishing.
func NewServer(logger *logrus.Logger, pub *journal.Publisher) *Server {
	rooms := room.NewRegistry()
	ctrl := game.NewController(rooms, logger)
	ctrl.Journal = pub
	return &Server{
		Logger: logger,
		Rooms:  rooms,
		Rounds: ctrl,
	}
}
