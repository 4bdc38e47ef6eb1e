// internal/journal/journal_test.go
package journal

import (
	"testing"

	"github.com/google/uuid"
)

// A nil Publisher must be safe to call so the controller never has to guard
// journal calls.
func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher
	p.RoundStarted("den", "apple", uuid.New())
	p.RoundEnded("den", "apple", uuid.New())
}

// Connect without REDIS_ADDR disables journaling rather than failing.
func TestConnectWithoutAddrDisablesJournal(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	p, err := Connect(nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil publisher when REDIS_ADDR is unset")
	}
}
