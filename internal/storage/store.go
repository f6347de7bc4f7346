package storage

import (
	"errors"
	"time"

	"escape-game-backend/internal/models"
)

// ErrNotFound is returned for lookups of rooms or players that do not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary of the game. Every mutation is a short
// read-modify-write round-trip; failures are fatal for the in-flight request.
type Store interface {
	GetRoom(code string) (*models.Room, error)
	ListRooms() ([]models.Room, error)
	CreateRoom(room *models.Room) error
	SaveRoom(room *models.Room) error
	DeleteRoom(code string) error

	GetPlayer(roomCode, playerCode string) (*models.Player, error)
	ListPlayers(roomCode string) ([]models.Player, error)
	CreatePlayers(players []models.Player) error
	SavePlayer(player *models.Player) error
	// ResetPlayers clears names and authenticated flags for a room.
	ResetPlayers(roomCode string) error

	// PruneFinished deletes finished rooms (and their players) created
	// before the cutoff. Returns the number of rooms removed.
	PruneFinished(before time.Time) (int64, error)
}
