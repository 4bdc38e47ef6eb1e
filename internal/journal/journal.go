// internal/journal/journal.go

// Package journal pushes round lifecycle records onto a Redis list for
// out-of-band consumers (stats, moderation tooling). It is a fire-and-forget
// feed, not state persistence: the coordinator still cold-starts with an
// empty registry.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list round records are pushed onto.
const DefaultQueueName = "skrawl_rounds"

// RoundRecord is one round lifecycle event.
type RoundRecord struct {
	Event     string    `json:"event"`
	RoomID    string    `json:"room_id"`
	Word      string    `json:"word"`
	DrawerID  uuid.UUID `json:"drawer_id"`
	Timestamp int64     `json:"timestamp"`
}

// Publisher publishes round records. A nil *Publisher is a valid no-op, so
// callers never guard journal calls.
type Publisher struct {
	rdb    *redis.Client
	queue  string
	logger *logrus.Logger
}

// Connect builds a Publisher from the environment:
//   - REDIS_ADDR: journaling is disabled (nil Publisher, nil error) when unset
//   - REDIS_DB: optional, default 0
//   - JOURNAL_QUEUE_NAME: optional, defaults to DefaultQueueName
func Connect(logger *logrus.Logger) (*Publisher, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   getEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &Publisher{
		rdb:    rdb,
		queue:  getEnv("JOURNAL_QUEUE_NAME", DefaultQueueName),
		logger: logger,
	}, nil
}

// RoundStarted records the start of a round.
func (p *Publisher) RoundStarted(roomID, word string, drawerID uuid.UUID) {
	p.publish(RoundRecord{Event: "round_start", RoomID: roomID, Word: word, DrawerID: drawerID})
}

// RoundEnded records the end of a round, natural or aborted.
func (p *Publisher) RoundEnded(roomID, word string, drawerID uuid.UUID) {
	p.publish(RoundRecord{Event: "round_end", RoomID: roomID, Word: word, DrawerID: drawerID})
}

func (p *Publisher) publish(rec RoundRecord) {
	if p == nil {
		return
	}
	rec.Timestamp = time.Now().UnixMilli()
	data, err := json.Marshal(rec)
	if err != nil {
		p.logger.Warnf("journal: failed to marshal round record: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		p.logger.Warnf("journal: failed to push round record to %q: %v", p.queue, err)
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as an integer, else a default.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
