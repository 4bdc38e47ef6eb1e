// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skrawl/skrawl/internal/middleware"
	"github.com/skrawl/skrawl/internal/room"
)

// WSHandler accepts a websocket connection and runs its read and write
// pumps. Each connection is assigned a fresh UUID, which doubles as the
// player id for every room it joins.
func WSHandler(logger *logrus.Logger, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		conn := &room.Conn{
			ID:      uuid.New(),
			Cancel:  cancel,
			OutChan: make(chan map[string]interface{}, 32),
		}

		go writePump(ctx, c, conn, logger)
		readPump(ctx, c, conn, s, logger)

		// readPump returned: the socket is gone one way or another.
		s.HandleDisconnect(conn)
		cancel()
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, nil)
	}
}

// readPump decodes inbound frames and dispatches them until the connection
// closes. Malformed frames are dropped, never fatal.
func readPump(ctx context.Context, c *websocket.Conn, conn *room.Conn, s *Server, logger *logrus.Logger) {
	for {
		typ, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				logger.Infof("conn %s: websocket closed", conn.ID)
			} else if !strings.Contains(err.Error(), "context canceled") {
				logger.Warnf("conn %s: read error: %v (CloseStatus: %d)", conn.ID, err, closeStatus)
			}
			return
		}
		if typ != websocket.MessageText {
			logger.Warnf("conn %s: ignoring non-text message type %d", conn.ID, typ)
			continue
		}

		var packet map[string]interface{}
		if err := json.Unmarshal(msg, &packet); err != nil {
			logger.Warnf("conn %s: invalid json: %v", conn.ID, err)
			continue
		}
		dispatch(s, conn, packet, logger)
	}
}

// dispatch routes one decoded packet by its "type" field. Field lookups are
// shape-tolerant: a missing or mistyped field becomes the zero value, which
// downstream guards treat as "nothing to do".
func dispatch(s *Server, conn *room.Conn, packet map[string]interface{}, logger *logrus.Logger) {
	action, _ := packet["type"].(string)
	roomID, _ := packet["room"].(string)

	switch action {
	case "joinRoom":
		username, _ := packet["username"].(string)
		s.HandleJoin(conn, username, roomID)
	case "startGame":
		s.HandleStartGame(conn, roomID)
	case "drawing":
		s.HandleDrawing(conn, roomID, packet)
	case "chatMessage":
		text, _ := packet["message"].(string)
		s.HandleChat(conn, roomID, text)
	default:
		logger.Warnf("conn %s: unknown action %q", conn.ID, action)
	}
}

// writePump drains the connection's OutChan onto the socket and sends
// periodic pings. Exits on context cancellation, channel close or the first
// failed write.
func writePump(ctx context.Context, c *websocket.Conn, conn *room.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-conn.OutChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("conn %s: failed to marshal outgoing msg: %v", conn.ID, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("conn %s: failed to write to websocket: %v", conn.ID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("conn %s: ping failed: %v, assuming disconnect", conn.ID, err)
				return
			}
		}
	}
}
