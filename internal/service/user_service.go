package service

import (
	"errors"
	"strings"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
	"github.com/shubhamjanki/collabhub-backend/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	FullName string `json:"full_name"`
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.FindByUsername(username)
}

func (s *UserService) IsUsernameAvailable(username string) (bool, error) {
	username = validation.NormalizeUsername(username)
	if !validation.ValidateUsername(username) {
		return false, errors.New("invalid username")
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return false, nil
	}
	return true, nil
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.FullName); name != "" {
		user.FullName = name
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) TouchLastSeen(userID uint) error {
	return s.userRepo.TouchLastSeen(userID, time.Now())
}

func (s *UserService) SearchUsers(query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.userRepo.SearchUsers(query, limit)
}
