package repository

import (
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Upsert stores an evaluation for (project, rubric). A re-evaluation replaces
// the previous comment and all per-criterion scores in one transaction.
func (r *EvaluationRepository) Upsert(eval *models.Evaluation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Evaluation
		err := tx.Where("project_id = ? AND rubric_id = ?", eval.ProjectID, eval.RubricID).
			First(&existing).Error
		switch {
		case err == nil:
			existing.EvaluatorID = eval.EvaluatorID
			existing.Comment = eval.Comment
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if err := tx.Where("evaluation_id = ?", existing.ID).
				Delete(&models.EvaluationScore{}).Error; err != nil {
				return err
			}
			eval.ID = existing.ID
		case err == gorm.ErrRecordNotFound:
			scores := eval.Scores
			eval.Scores = nil
			if err := tx.Create(eval).Error; err != nil {
				return err
			}
			eval.Scores = scores
		default:
			return err
		}

		for i := range eval.Scores {
			eval.Scores[i].ID = 0
			eval.Scores[i].EvaluationID = eval.ID
		}
		if len(eval.Scores) > 0 {
			return tx.Create(&eval.Scores).Error
		}
		return nil
	})
}

func (r *EvaluationRepository) FindByID(id uint) (*models.Evaluation, error) {
	var eval models.Evaluation
	err := r.db.Preload("Scores").Preload("Evaluator").First(&eval, id).Error
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *EvaluationRepository) ListByProject(projectID uint) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.Preload("Scores").Preload("Evaluator").
		Where("project_id = ?", projectID).
		Find(&evals).Error
	return evals, err
}
