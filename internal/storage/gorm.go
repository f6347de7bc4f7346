package storage

import (
	"errors"
	"time"

	"escape-game-backend/internal/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetRoom(code string) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("code = ?", code).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *GormStore) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *GormStore) CreateRoom(room *models.Room) error {
	return s.db.Create(room).Error
}

func (s *GormStore) SaveRoom(room *models.Room) error {
	return s.db.Save(room).Error
}

func (s *GormStore) DeleteRoom(code string) error {
	if err := s.db.Where("room_code = ?", code).Delete(&models.Player{}).Error; err != nil {
		return err
	}
	return s.db.Where("code = ?", code).Delete(&models.Room{}).Error
}

func (s *GormStore) GetPlayer(roomCode, playerCode string) (*models.Player, error) {
	var player models.Player
	if err := s.db.Where("room_code = ? AND code = ?", roomCode, playerCode).
		First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (s *GormStore) ListPlayers(roomCode string) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Where("room_code = ?", roomCode).
		Order("joined_at ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (s *GormStore) CreatePlayers(players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	return s.db.Create(&players).Error
}

func (s *GormStore) SavePlayer(player *models.Player) error {
	return s.db.Save(player).Error
}

func (s *GormStore) ResetPlayers(roomCode string) error {
	return s.db.Model(&models.Player{}).
		Where("room_code = ?", roomCode).
		Updates(map[string]interface{}{
			"name":          "",
			"authenticated": false,
			"web_token":     "",
		}).Error
}

func (s *GormStore) PruneFinished(before time.Time) (int64, error) {
	var codes []string
	if err := s.db.Model(&models.Room{}).
		Where("is_finished = ? AND created_at < ?", true, before).
		Pluck("code", &codes).Error; err != nil {
		return 0, err
	}
	if len(codes) == 0 {
		return 0, nil
	}

	if err := s.db.Where("room_code IN ?", codes).Delete(&models.Player{}).Error; err != nil {
		return 0, err
	}
	result := s.db.Where("code IN ?", codes).Delete(&models.Room{})
	return result.RowsAffected, result.Error
}
