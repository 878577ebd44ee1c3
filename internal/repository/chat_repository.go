package repository

import (
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type ChatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{db: db}
}

func (r *ChatMessageRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *ChatMessageRepository) FindByID(id uint) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.Preload("Sender").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// FindProjectMessages returns up to limit messages for a project in
// chronological order. A non-zero cursor fetches messages older than that id.
func (r *ChatMessageRepository) FindProjectMessages(projectID uint, cursor uint, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	q := r.db.Preload("Sender").Where("project_id = ?", projectID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	err := q.Order("id DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse to get chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
