package storage

import (
	"errors"
	"testing"
	"time"

	"escape-game-backend/internal/models"
)

func TestMemStore_RoomLifecycle(t *testing.T) {
	s := NewMemStore()

	if _, err := s.GetRoom("R1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetRoom on empty store = %v, want ErrNotFound", err)
	}

	room := &models.Room{Code: "R1", StageDurationSec: 180}
	if err := s.CreateRoom(room); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.ID == 0 {
		t.Error("CreateRoom should assign an ID")
	}
	if room.CreatedAt.IsZero() {
		t.Error("CreateRoom should stamp CreatedAt")
	}

	got, err := s.GetRoom("R1")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if got.Code != "R1" || got.StageDurationSec != 180 {
		t.Errorf("got %+v", got)
	}

	// The returned room is a copy; mutating it must not leak into the store.
	got.CurrentStage = 99
	again, _ := s.GetRoom("R1")
	if again.CurrentStage == 99 {
		t.Error("GetRoom must return a copy")
	}

	got.CurrentStage = 2
	if err := s.SaveRoom(got); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}
	saved, _ := s.GetRoom("R1")
	if saved.CurrentStage != 2 {
		t.Errorf("stage = %d after save, want 2", saved.CurrentStage)
	}

	if err := s.SaveRoom(&models.Room{Code: "GHOST"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveRoom on unknown room = %v, want ErrNotFound", err)
	}

	if err := s.DeleteRoom("R1"); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if _, err := s.GetRoom("R1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("room survived delete: %v", err)
	}
}

func TestMemStore_ListRooms(t *testing.T) {
	s := NewMemStore()
	s.CreateRoom(&models.Room{Code: "A"})
	s.CreateRoom(&models.Room{Code: "B"})

	rooms, err := s.ListRooms()
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("len = %d, want 2", len(rooms))
	}
}

func TestMemStore_PlayerLifecycle(t *testing.T) {
	s := NewMemStore()
	s.CreateRoom(&models.Room{Code: "R1"})

	batch := []models.Player{
		{RoomCode: "R1", Code: "AAAAAA"},
		{RoomCode: "R1", Code: "BBBBBB"},
	}
	if err := s.CreatePlayers(batch); err != nil {
		t.Fatalf("CreatePlayers: %v", err)
	}

	players, err := s.ListPlayers("R1")
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("len = %d, want 2", len(players))
	}
	if players[0].ID == 0 || players[1].ID == 0 {
		t.Error("CreatePlayers should assign IDs")
	}

	p, err := s.GetPlayer("R1", "AAAAAA")
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	p.Name = "Alice"
	p.Authenticated = true
	p.WebToken = "tok"
	if err := s.SavePlayer(p); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}

	p2, _ := s.GetPlayer("R1", "AAAAAA")
	if p2.Name != "Alice" || !p2.Authenticated {
		t.Errorf("player not saved: %+v", p2)
	}

	if _, err := s.GetPlayer("R1", "ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPlayer unknown = %v, want ErrNotFound", err)
	}
	if err := s.SavePlayer(&models.Player{RoomCode: "R1", ID: 999}); !errors.Is(err, ErrNotFound) {
		t.Errorf("SavePlayer unknown = %v, want ErrNotFound", err)
	}
}

func TestMemStore_ResetPlayers(t *testing.T) {
	s := NewMemStore()
	s.CreatePlayers([]models.Player{
		{RoomCode: "R1", Code: "AAAAAA", Name: "Alice", Authenticated: true, WebToken: "tok"},
	})

	if err := s.ResetPlayers("R1"); err != nil {
		t.Fatalf("ResetPlayers: %v", err)
	}

	p, _ := s.GetPlayer("R1", "AAAAAA")
	if p.Name != "" || p.Authenticated || p.WebToken != "" {
		t.Errorf("player not cleared: %+v", p)
	}
	if p.Code != "AAAAAA" {
		t.Error("reset must keep the join code")
	}
}

func TestMemStore_DeleteRoomDropsPlayers(t *testing.T) {
	s := NewMemStore()
	s.CreateRoom(&models.Room{Code: "R1"})
	s.CreatePlayers([]models.Player{{RoomCode: "R1", Code: "AAAAAA"}})

	s.DeleteRoom("R1")

	players, _ := s.ListPlayers("R1")
	if len(players) != 0 {
		t.Error("players survived room deletion")
	}
}

func TestMemStore_PruneFinished(t *testing.T) {
	s := NewMemStore()
	old := time.Now().UTC().Add(-60 * 24 * time.Hour)

	s.CreateRoom(&models.Room{Code: "OLD_DONE", CreatedAt: old, IsFinished: true})
	s.CreateRoom(&models.Room{Code: "OLD_LIVE", CreatedAt: old})
	s.CreateRoom(&models.Room{Code: "NEW_DONE", CreatedAt: time.Now().UTC(), IsFinished: true})
	s.CreatePlayers([]models.Player{{RoomCode: "OLD_DONE", Code: "AAAAAA"}})

	cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)
	removed, err := s.PruneFinished(cutoff)
	if err != nil {
		t.Fatalf("PruneFinished: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if _, err := s.GetRoom("OLD_DONE"); !errors.Is(err, ErrNotFound) {
		t.Error("old finished room should be pruned")
	}
	if _, err := s.GetRoom("OLD_LIVE"); err != nil {
		t.Error("unfinished room must survive pruning")
	}
	if _, err := s.GetRoom("NEW_DONE"); err != nil {
		t.Error("recent finished room must survive pruning")
	}
	players, _ := s.ListPlayers("OLD_DONE")
	if len(players) != 0 {
		t.Error("pruning must drop the room's players too")
	}
}
