package storage

import (
	"sync"
	"time"

	"escape-game-backend/internal/models"
)

// MemStore keeps rooms and players in process memory. It backs tests and
// the DB-less development mode; the gorm store is the production path.
type MemStore struct {
	mu      sync.RWMutex
	nextID  uint
	rooms   map[string]models.Room
	players map[string][]models.Player
}

func NewMemStore() *MemStore {
	return &MemStore{
		rooms:   make(map[string]models.Room),
		players: make(map[string][]models.Player),
	}
}

func (s *MemStore) GetRoom(code string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (s *MemStore) ListRooms() ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *MemStore) CreateRoom(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	room.ID = s.nextID
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	s.rooms[room.Code] = *room
	return nil
}

func (s *MemStore) SaveRoom(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.Code]; !ok {
		return ErrNotFound
	}
	s.rooms[room.Code] = *room
	return nil
}

func (s *MemStore) DeleteRoom(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, code)
	delete(s.players, code)
	return nil
}

func (s *MemStore) GetPlayer(roomCode, playerCode string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.players[roomCode] {
		if p.Code == playerCode {
			player := p
			return &player, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) ListPlayers(roomCode string) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]models.Player, len(s.players[roomCode]))
	copy(players, s.players[roomCode])
	return players, nil
}

func (s *MemStore) CreatePlayers(players []models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range players {
		s.nextID++
		players[i].ID = s.nextID
		if players[i].JoinedAt.IsZero() {
			players[i].JoinedAt = time.Now().UTC()
		}
		s.players[players[i].RoomCode] = append(s.players[players[i].RoomCode], players[i])
	}
	return nil
}

func (s *MemStore) SavePlayer(player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.players[player.RoomCode]
	for i := range list {
		if list[i].ID == player.ID {
			list[i] = *player
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemStore) ResetPlayers(roomCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.players[roomCode]
	for i := range list {
		list[i].Name = ""
		list[i].Authenticated = false
		list[i].WebToken = ""
	}
	return nil
}

func (s *MemStore) PruneFinished(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for code, room := range s.rooms {
		if room.IsFinished && room.CreatedAt.Before(before) {
			delete(s.rooms, code)
			delete(s.players, code)
			removed++
		}
	}
	return removed, nil
}
