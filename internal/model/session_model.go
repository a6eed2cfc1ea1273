package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Session struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	State     string         `gorm:"type:varchar(16);not null"`
	Domain    string         `gorm:"type:varchar(255);not null"`
	Context   datatypes.JSON `gorm:"type:jsonb"`
	StartTime time.Time      `gorm:"not null"`
	EndTime   time.Time      `gorm:"not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
