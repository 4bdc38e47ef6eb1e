// internal/room/conn.go
package room

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Conn is one live connection's outbound side. The websocket layer drains
// OutChan in a write pump; everything else only ever writes to the channel,
// so room and round code never blocks on socket I/O.
type Conn struct {
	ID      uuid.UUID
	Cancel  context.CancelFunc
	OutChan chan map[string]interface{}
}

// Write pushes a message onto the connection's OutChan non-blockingly.
// Messages for a closed or backed-up connection are dropped and logged.
func (c *Conn) Write(msg map[string]interface{}) {
	select {
	case c.OutChan <- msg:
	default:
		msgType, _ := msg["type"].(string)
		logrus.Warnf("conn %s: outbound channel full or closed, dropped %q message", c.ID, msgType)
	}
}
