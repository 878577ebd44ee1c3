package models

import (
	"time"

	"gorm.io/gorm"
)

type Rubric struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CourseID  uint   `gorm:"not null;index" json:"course_id"`
	Title     string `gorm:"size:150;not null" json:"title"`
	CreatedBy uint   `gorm:"not null" json:"created_by"`

	Criteria []RubricCriterion `gorm:"foreignKey:RubricID" json:"criteria"`
}

type RubricCriterion struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	RubricID    uint   `gorm:"not null;index" json:"rubric_id"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	MaxScore    int    `gorm:"not null" json:"max_score"`
	Position    int    `gorm:"not null;default:0" json:"position"`
}

type Evaluation struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProjectID   uint   `gorm:"not null;uniqueIndex:idx_eval_rubric,priority:1" json:"project_id"`
	RubricID    uint   `gorm:"not null;uniqueIndex:idx_eval_rubric,priority:2" json:"rubric_id"`
	EvaluatorID uint   `gorm:"not null" json:"evaluator_id"`
	Comment     string `gorm:"size:2000" json:"comment"`

	Evaluator User              `gorm:"foreignKey:EvaluatorID" json:"evaluator"`
	Scores    []EvaluationScore `gorm:"foreignKey:EvaluationID" json:"scores"`
}

type EvaluationScore struct {
	ID           uint `gorm:"primarykey" json:"id"`
	EvaluationID uint `gorm:"not null;index" json:"evaluation_id"`
	CriterionID  uint `gorm:"not null" json:"criterion_id"`
	Score        int  `gorm:"not null" json:"score"`
}

// TotalScore sums the per-criterion scores of an evaluation.
func (e *Evaluation) TotalScore() int {
	total := 0
	for _, s := range e.Scores {
		total += s.Score
	}
	return total
}
