package service

import (
	"errors"
	"log"
	"strings"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
	"github.com/shubhamjanki/collabhub-backend/internal/validation"
)

type ChatService struct {
	chatRepo      repository.ChatMessageRepositoryInterface
	contributions *ContributionService
}

func NewChatService(chatRepo repository.ChatMessageRepositoryInterface, contributions *ContributionService) *ChatService {
	return &ChatService{chatRepo: chatRepo, contributions: contributions}
}

// SendMessage persists a project chat message and records the chat activity
// against the sender's contribution record. A tracking failure does not fail
// the send; the message is already durable at that point.
func (s *ChatService) SendMessage(projectID, senderID uint, content string) (*models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("message content is required")
	}
	if len(content) > validation.MaxMessageLength() {
		return nil, errors.New("message too long")
	}

	message := &models.ChatMessage{
		ProjectID: projectID,
		SenderID:  senderID,
		Content:   content,
	}
	if err := s.chatRepo.Create(message); err != nil {
		return nil, err
	}

	if s.contributions != nil {
		if err := s.contributions.TrackContribution(senderID, projectID, ActivityChat, nil); err != nil {
			log.Printf("Failed to track chat activity for user %d in project %d: %v", senderID, projectID, err)
		}
	}

	return s.chatRepo.FindByID(message.ID)
}

func (s *ChatService) GetMessages(projectID uint, cursor uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.chatRepo.FindProjectMessages(projectID, cursor, limit)
}
