package mqtt

import (
	"testing"
	"time"
)

// The bridge sits inside the game's serialized operations, so a dead broker
// must never stall a publish call. Port 1 is unroutable; the drain goroutine
// absorbs the connect failures while callers return immediately.
func TestBridge_PublishNeverBlocks(t *testing.T) {
	b := NewBridge("tcp://127.0.0.1:1", "test")

	start := time.Now()
	for i := 0; i < 500; i++ {
		b.SetLED("ROOM", true)
		b.Buzz("ROOM", 120)
		b.SetChronoColor("ROOM", "green")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("publishing took %v with the broker down", elapsed)
	}
}

func TestBridge_QueueOverflowDropsSignals(t *testing.T) {
	// A full queue drops rather than blocks; this must hold even before the
	// drain goroutine has attempted its first connect.
	b := NewBridge("tcp://127.0.0.1:1", "test")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10*queueSize; i++ {
			b.SetChronoColor("ROOM", "red")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full queue")
	}
}
