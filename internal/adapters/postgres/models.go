package postgres

import (
	"time"

	"github.com/google/uuid"
)

type sessionModel struct {
	SessionID   uuid.UUID  `gorm:"column:session_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Shop        string     `gorm:"column:shop"`
	AccessToken string     `gorm:"column:access_token"`
	Scope       string     `gorm:"column:scope"`
	IsOnline    bool       `gorm:"column:is_online"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (sessionModel) TableName() string { return "sessions" }
