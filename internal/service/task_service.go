package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
)

type TaskService struct {
	taskRepo      repository.TaskRepositoryInterface
	contributions *ContributionService
}

func NewTaskService(taskRepo repository.TaskRepositoryInterface, contributions *ContributionService) *TaskService {
	return &TaskService{taskRepo: taskRepo, contributions: contributions}
}

type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  *uint  `json:"assignee_id"`
}

func (s *TaskService) CreateTask(projectID, creatorID uint, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("task title is required")
	}
	task := &models.Task{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		AssigneeID:  input.AssigneeID,
		CreatedBy:   creatorID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(task.ID)
}

func (s *TaskService) GetTask(id uint) (*models.Task, error) {
	return s.taskRepo.FindByID(id)
}

func (s *TaskService) ListByProject(projectID uint) ([]models.Task, error) {
	return s.taskRepo.ListByProject(projectID)
}

// UpdateStatus moves a task between statuses. Completing a task (any status
// to done) records a task activity for the acting user.
func (s *TaskService) UpdateStatus(taskID, userID uint, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, errors.New("invalid task status")
	}
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}

	completing := status == models.TaskStatusDone && task.Status != models.TaskStatusDone
	task.Status = status
	if completing {
		now := time.Now()
		task.CompletedAt = &now
	} else if status != models.TaskStatusDone {
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	if completing && s.contributions != nil {
		if err := s.contributions.TrackContribution(userID, task.ProjectID, ActivityTask, nil); err != nil {
			log.Printf("Failed to track task completion for user %d on task %d: %v", userID, taskID, err)
		}
	}

	return task, nil
}

func (s *TaskService) DeleteTask(taskID uint) error {
	return s.taskRepo.Delete(taskID)
}
