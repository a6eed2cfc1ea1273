package model

import (
	"time"

	"github.com/google/uuid"
)

type Decision struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	URLKey     string    `gorm:"type:text;not null;uniqueIndex"`
	URL        string    `gorm:"type:text;not null"`
	Partition  string    `gorm:"type:varchar(16);not null;index"`
	Reason     string    `gorm:"type:text"`
	Confidence float64
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Decision) TableName() string {
	return "decisions"
}
