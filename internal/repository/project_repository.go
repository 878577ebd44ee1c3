package repository

import (
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Members.User").Preload("Creator").First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepository) ListByCourse(courseID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("course_id = ?", courseID).
		Preload("Creator").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) ListByUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Preload("Creator").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) AddMember(projectID, userID uint, role models.ProjectRole) error {
	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	return r.db.Create(&member).Error
}

func (r *ProjectRepository) RemoveMember(projectID, userID uint) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

func (r *ProjectRepository) IsMember(projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepository) GetMemberRole(projectID, userID uint) (models.ProjectRole, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error; err != nil {
		return "", err
	}
	return member.Role, nil
}

func (r *ProjectRepository) GetMemberIDs(projectID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error
	return ids, err
}
