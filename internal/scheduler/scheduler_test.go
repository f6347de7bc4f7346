package scheduler

import (
	"testing"
	"time"

	"escape-game-backend/internal/models"
	"escape-game-backend/internal/storage"
)

func TestScheduler_StartStop(t *testing.T) {
	s := New(storage.NewMemStore())
	s.Start()
	s.Stop()
}

func TestRetention_PruneCutoff(t *testing.T) {
	store := storage.NewMemStore()
	old := time.Now().UTC().Add(-retainFinished - time.Hour)
	store.CreateRoom(&models.Room{Code: "STALE", CreatedAt: old, IsFinished: true})
	store.CreateRoom(&models.Room{Code: "FRESH", CreatedAt: time.Now().UTC(), IsFinished: true})

	// Same call the nightly job makes.
	removed, err := store.PruneFinished(time.Now().UTC().Add(-retainFinished))
	if err != nil {
		t.Fatalf("PruneFinished: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := store.GetRoom("FRESH"); err != nil {
		t.Error("room inside the retention window must survive")
	}
}
