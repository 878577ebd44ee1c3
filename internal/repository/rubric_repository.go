package repository

import (
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type RubricRepository struct {
	db *gorm.DB
}

func NewRubricRepository(db *gorm.DB) *RubricRepository {
	return &RubricRepository{db: db}
}

func (r *RubricRepository) Create(rubric *models.Rubric) error {
	return r.db.Create(rubric).Error
}

func (r *RubricRepository) FindByID(id uint) (*models.Rubric, error) {
	var rubric models.Rubric
	err := r.db.Preload("Criteria", func(db *gorm.DB) *gorm.DB {
		return db.Order("rubric_criteria.position ASC")
	}).First(&rubric, id).Error
	if err != nil {
		return nil, err
	}
	return &rubric, nil
}

func (r *RubricRepository) ListByCourse(courseID uint) ([]models.Rubric, error) {
	var rubrics []models.Rubric
	err := r.db.Preload("Criteria", func(db *gorm.DB) *gorm.DB {
		return db.Order("rubric_criteria.position ASC")
	}).Where("course_id = ?", courseID).Find(&rubrics).Error
	return rubrics, err
}

func (r *RubricRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rubric_id = ?", id).Delete(&models.RubricCriterion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rubric{}, id).Error
	})
}
