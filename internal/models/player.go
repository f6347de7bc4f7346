package models

import "time"

type Player struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RoomCode      string    `gorm:"size:8;not null;index" json:"room_code"`
	Code          string    `gorm:"size:6;not null;index" json:"code"`
	Name          string    `gorm:"size:100" json:"name,omitempty"`
	Authenticated bool      `gorm:"not null;default:false" json:"authenticated"`
	WebToken      string    `gorm:"size:64" json:"web_token,omitempty"`
	JoinedAt      time.Time `json:"joined_at"`
}
