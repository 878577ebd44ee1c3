package models

import (
	"time"

	"gorm.io/gorm"
)

type ChatMessage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	SenderID  uint   `gorm:"not null" json:"sender_id"`
	Content   string `gorm:"type:text;not null" json:"content"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender"`
}
