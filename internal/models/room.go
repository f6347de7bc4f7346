package models

import "time"

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:8;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"created_at"`

	StartedAt    *time.Time `json:"started_at,omitempty"`
	CurrentStage int        `gorm:"not null;default:0" json:"current_stage"`
	IsFinished   bool       `gorm:"not null;default:false" json:"is_finished"`
	Success      bool       `gorm:"not null;default:false" json:"success"`

	StageStartedAt   *time.Time `json:"stage_started_at,omitempty"`
	StageDurationSec int        `gorm:"not null;default:90" json:"stage_duration_sec"`
	MissedCount      int        `gorm:"not null;default:0" json:"missed_count"`
	Score            int        `gorm:"not null;default:0" json:"score"`
}
